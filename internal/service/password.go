package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"newsact/internal/model"
)

const bcryptCost = 12

// HashPassword produces a salted bcrypt digest. Each call embeds a fresh
// random salt, so hashing the same plaintext twice yields different digests.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares plaintext against a stored digest in constant time.
// A wrong password is (false, nil); an unparseable digest is corrupted state
// and surfaces as ErrMalformedDigest.
func VerifyPassword(plaintext string, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", model.ErrMalformedDigest, err)
}
