package apierror

import (
	"fmt"
	"net/http"
)

// APIError is a failure the HTTP layer can render directly: a stable machine
// code, a human message, and the status to send with it.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// BadRequest and PayloadTooLarge cover the request-shape failures handlers
// raise themselves; domain failures travel as model sentinels instead.
func BadRequest(message string) *APIError {
	return New("BAD_REQUEST", message, "", http.StatusBadRequest)
}

func PayloadTooLarge(message string) *APIError {
	return New("PAYLOAD_TOO_LARGE", message, "", http.StatusRequestEntityTooLarge)
}
