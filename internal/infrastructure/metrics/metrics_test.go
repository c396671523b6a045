package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orderly-console/internal/infrastructure/metrics"
)

func TestInstrumentTransport_CuentaPeticiones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	m := metrics.New()
	client := &http.Client{Transport: m.InstrumentTransport(nil)}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() != "orderly_console_upstream_requests_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		assert.Equal(t, float64(1), mf.GetMetric()[0].GetCounter().GetValue())
		found = true
	}
	assert.True(t, found)
}

func TestMiddlewareYHandler(t *testing.T) {
	m := metrics.New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	text := string(body)

	assert.True(t, strings.Contains(text, `orderly_console_http_requests_total{method="GET",route="/health",status="200"} 1`))
	assert.True(t, strings.Contains(text, "orderly_console_sessions_active 1"))
}
