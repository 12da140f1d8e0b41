package middleware

import (
	"fmt"
	"net/http"
)

// DefaultMaxBodyBytes bounds request bodies when no positive limit is given.
const DefaultMaxBodyBytes int64 = 64 << 10

// MaxRequestSize rejects bodies larger than limit. A declared Content-Length
// over the limit is answered with 413 at once; otherwise the body is wrapped
// in http.MaxBytesReader and the handler sees *http.MaxBytesError on read.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				WriteError(w, r, http.StatusRequestEntityTooLarge, CodeBodyTooLarge,
					fmt.Sprintf("request body exceeds %d bytes", limit), nil)

				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
