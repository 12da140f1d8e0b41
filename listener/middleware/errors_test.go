package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"name": "cli-tool"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"cli-tool"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	handler := chimiddleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusUnprocessableEntity, CodeInvalidConfig, "invalid configuration",
			map[string]any{"fields": []string{"layout"}})
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resolve", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	detail := decodeError(t, rec)
	assert.Equal(t, CodeInvalidConfig, detail.Code)
	assert.Equal(t, "invalid configuration", detail.Message)
	assert.NotEmpty(t, detail.RequestID)
	assert.Equal(t, []any{"layout"}, detail.Details["fields"])
}

func TestWriteError_WithoutRequestID(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, CodeNotFound, "missing", nil)

	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"missing"}}`, rec.Body.String())
}
