package model

import "errors"

var (
	// Auth related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")

	// ErrMalformedDigest means a stored password hash could not be parsed.
	// This is corrupted state, never the result of a wrong password.
	ErrMalformedDigest = errors.New("malformed password digest")

	// Entity related errors
	ErrAdminNotFound   = errors.New("admin not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrRegionNotFound  = errors.New("region not found")
	ErrSubZoneNotFound = errors.New("sub-zone not found")
	ErrRegionExists    = errors.New("region already exists")

	// Storage related errors
	ErrFileTooLarge       = errors.New("file too large")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrFileNotFound       = errors.New("file not found")
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
