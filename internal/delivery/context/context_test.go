package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"finsync/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRequestID_FallsBackToHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "from-header")
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "from-header", GetRequestID(c))

	SetRequestID(c, "assigned")
	assert.Equal(t, "assigned", GetRequestID(c))
}

func TestLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "r1"))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetClaims(c)
	assert.False(t, ok)

	claims := &service.Claims{AccountID: uuid.New()}
	SetClaims(c, claims)

	got, ok := GetClaims(c)
	require.True(t, ok)
	assert.Equal(t, claims.AccountID, got.AccountID)
}
