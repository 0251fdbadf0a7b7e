package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		wantLevel string
		status    int
	}{
		{
			name:      "successful request",
			method:    http.MethodGet,
			path:      "/api/v1/sync/status",
			status:    http.StatusOK,
			wantLevel: "INFO",
		},
		{
			name:      "created item",
			method:    http.MethodPost,
			path:      "/api/v1/sync/items",
			status:    http.StatusCreated,
			wantLevel: "INFO",
		},
		{
			name:      "client error",
			method:    http.MethodPost,
			path:      "/api/v1/sync/merge",
			status:    http.StatusForbidden,
			wantLevel: "WARN",
		},
		{
			name:      "server error",
			method:    http.MethodPost,
			path:      "/api/v1/sync/items",
			status:    http.StatusInternalServerError,
			wantLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer secret-token")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			entry := decodeLogLine(t, &buf)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "HTTP request", entry["msg"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.NotContains(t, buf.String(), "secret-token")
		})
	}
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	t.Run("generated when absent", func(t *testing.T) {
		var buf bytes.Buffer
		handler := LoggingMiddleware(slog.New(slog.NewJSONHandler(&buf, nil)))(http.NotFoundHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		requestID := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(requestID)
		require.NoError(t, err)
		assert.Equal(t, requestID, decodeLogLine(t, &buf)["request_id"])
	})

	t.Run("kept from client", func(t *testing.T) {
		var buf bytes.Buffer
		handler := LoggingMiddleware(slog.New(slog.NewJSONHandler(&buf, nil)))(http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set(RequestIDHeader, "replica-a-42")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "replica-a-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "replica-a-42", decodeLogLine(t, &buf)["request_id"])
	})

	t.Run("replaced when too long", func(t *testing.T) {
		var buf bytes.Buffer
		handler := LoggingMiddleware(slog.New(slog.NewJSONHandler(&buf, nil)))(http.NotFoundHandler())

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})
}

func TestLoggingMiddleware_CapturesResponseMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
		_, _ = w.Write([]byte(" world"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	entry := decodeLogLine(t, &buf)
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, float64(11), entry["bytes_written"])
	assert.Contains(t, entry, "duration_ms")
}

func TestLoggingWithSkip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := LoggingWithSkip(logger, []string{"/api/v1/health"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Empty(t, buf.String(), "health checks are not logged")

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil))
	assert.Contains(t, buf.String(), "/api/v1/sync/status")
}

func TestResponseWriter_KeepsFirstStatusCode(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusTeapot, rw.statusCode)
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	n, err := rw.Write([]byte("body"))
	require.NoError(t, err)
	rw.WriteHeader(http.StatusBadRequest)

	assert.Equal(t, 4, n)
	assert.Equal(t, int64(4), rw.written)
	assert.Equal(t, http.StatusOK, rw.statusCode)
}
