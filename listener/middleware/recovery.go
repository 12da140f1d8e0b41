package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// recoveryWriter records whether the response has started.
type recoveryWriter struct {
	http.ResponseWriter

	started bool
}

func (w *recoveryWriter) WriteHeader(code int) {
	if code >= http.StatusOK {
		w.started = true
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *recoveryWriter) Write(b []byte) (int, error) {
	w.started = true

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (w *recoveryWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recovery turns a panic in a handler into a logged 500 response. When the
// response has already started only the log entry is written.
// http.ErrAbortHandler is re-raised.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recWriter := &recoveryWriter{ResponseWriter: w}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				attrs := []any{
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", chimiddleware.GetReqID(r.Context())),
				}

				if recWriter.started {
					logger.Error("panic after response started", attrs...)

					return
				}

				logger.Error("panic recovered", attrs...)
				WriteError(recWriter, r, http.StatusInternalServerError, CodeInternalError, "internal server error", nil)
			}()

			next.ServeHTTP(recWriter, r)
		})
	}
}
