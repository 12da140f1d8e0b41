package middleware

import (
	"encoding/json"
	"net/http"
	"time"
)

// DefaultTimeout applies when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout answers 503 with a JSON error when the handler runs longer than
// duration.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	if duration <= 0 {
		duration = DefaultTimeout
	}

	body, _ := json.Marshal(ErrorResponse{Error: ErrorDetail{
		Code:    CodeTimeout,
		Message: "request timed out after " + duration.String(),
	}})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, duration, string(body))
	}
}
