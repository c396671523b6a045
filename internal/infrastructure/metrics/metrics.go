package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics registro propio de la consola (no el global) para poder aislarlo en tests.
type Metrics struct {
	Registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	sessions         prometheus.Gauge
	pollFailures     prometheus.Counter
}

// New registra los colectores.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderly_console",
			Name:      "upstream_requests_total",
			Help:      "Peticiones a la API remota por código y método.",
		}, []string{"code", "method"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orderly_console",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latencia de las peticiones a la API remota.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderly_console",
			Name:      "http_requests_total",
			Help:      "Peticiones servidas por la consola.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orderly_console",
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones servidas por la consola.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orderly_console",
			Name:      "sessions_active",
			Help:      "Sesiones de consola abiertas.",
		}),
		pollFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orderly_console",
			Name:      "notification_poll_failures_total",
			Help:      "Refrescos de notificaciones fallidos.",
		}),
	}
	reg.MustRegister(
		m.upstreamRequests, m.upstreamDuration,
		m.httpRequests, m.httpDuration,
		m.sessions, m.pollFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// InstrumentTransport envuelve el transporte del cliente remoto con contador e histograma.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.upstreamRequests,
		promhttp.InstrumentRoundTripperDuration(m.upstreamDuration, next))
}

// SessionOpened / SessionClosed mantienen el gauge de sesiones.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// PollFailed cuenta un refresco de notificaciones fallido.
func (m *Metrics) PollFailed() { m.pollFailures.Inc() }

// Middleware mide las peticiones de la consola. Usa la ruta registrada, no la URL, para
// no disparar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics en fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
