package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktanaka/coderelay-go/internal/middleware"
)

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})
	wrapped := middleware.Recovery(logger, middleware.DefaultPanicHandler)(boom)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/ABC123", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "panic recovered")
	assert.Contains(t, out, "kaboom")
	assert.Contains(t, out, `"component":"http"`)
	assert.Contains(t, out, "/api/v1/rooms/ABC123")
}

func TestRecoveryPassesThroughNormalRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	wrapped := middleware.Recovery(logger, middleware.DefaultPanicHandler)(ok)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, strings.Contains(buf.String(), "panic recovered"))
}
