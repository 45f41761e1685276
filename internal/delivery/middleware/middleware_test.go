package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finsync/config"
	deliverycontext "finsync/internal/delivery/context"
	"finsync/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(buf *bytes.Buffer, debug bool, m *metrics.Metrics) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewMetricsMiddleware(m).Handle)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, deliverycontext.GetRequestID(c))
	})
	e.GET("/fail", func(echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "nope")
	})

	return e
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "well formed id is reused", inbound: "trace-abc_123", reuse: true},
		{name: "missing id is generated"},
		{name: "id with spaces is replaced", inbound: "has space"},
		{name: "oversized id is replaced", inbound: strings.Repeat("a", 129)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(&bytes.Buffer{}, false, metrics.New())
			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tt.inbound != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.inbound)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			require.NotEmpty(t, got)
			assert.Equal(t, got, rec.Body.String())
			if tt.reuse {
				assert.Equal(t, tt.inbound, got)
			} else {
				assert.NotEqual(t, tt.inbound, got)
			}
		})
	}
}

func TestLoggerMiddleware_OnlyFailuresOutsideDebug(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf, false, metrics.New())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail?token=secret", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, buf.String(), `"status":400`)
	assert.Contains(t, buf.String(), `"request_id"`)
	assert.NotContains(t, buf.String(), "secret")
}

func TestLoggerMiddleware_DebugLogsEverything(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEcho(&buf, true, metrics.New())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Contains(t, buf.String(), `"route":"/ok"`)
}

func TestMetricsMiddleware_RecordsRoutes(t *testing.T) {
	m := metrics.New()
	e := newTestEcho(&bytes.Buffer{}, false, m)

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	count, err := testutil.GatherAndCount(m.Registry(), "finsync_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
