package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newsact/internal/model"
	"newsact/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Incorrect username or password"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	case errors.Is(err, model.ErrExpiredToken):
		status = http.StatusUnauthorized
		body.Code = "TOKEN_EXPIRED"
		body.Message = "Token has expired"
	case errors.Is(err, model.ErrInvalidToken):
		status = http.StatusUnauthorized
		body.Code = "INVALID_TOKEN"
		body.Message = "Token is invalid"
	case errors.Is(err, model.ErrAdminNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Admin not found"
	case errors.Is(err, model.ErrPostNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Post not found"
	case errors.Is(err, model.ErrRegionNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Region not found"
	case errors.Is(err, model.ErrSubZoneNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Sub-zone not found"
	case errors.Is(err, model.ErrFileNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "File not found"
	case errors.Is(err, model.ErrRegionExists):
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "Region already exists"
	case errors.Is(err, model.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
		body.Code = "PAYLOAD_TOO_LARGE"
		body.Message = "File exceeds the maximum allowed size"
		body.Details = err.Error()
	case errors.Is(err, model.ErrUnsupportedType):
		status = http.StatusUnsupportedMediaType
		body.Code = "UNSUPPORTED_TYPE"
		body.Message = "Allowed types: image/jpeg, image/png, image/webp"
		body.Details = err.Error()
	case errors.Is(err, model.ErrBackendUnavailable):
		status = http.StatusBadGateway
		body.Code = "STORAGE_UNAVAILABLE"
		body.Message = "Storage backend is unavailable"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
		body.Details = err.Error()
	case errors.Is(err, model.ErrMalformedDigest):
		// Corrupted stored credential: keep the detail out of the response.
		slog.Error("malformed credential digest encountered", "error", err.Error())
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
