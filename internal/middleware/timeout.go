package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"newsact/internal/model"
)

// Timeout cuts off handlers that outlive the request budget. The 503 body is
// rendered through the standard response envelope so clients parse it like
// any other error.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "REQUEST_TIMEOUT",
			Message: "request timed out",
		},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
