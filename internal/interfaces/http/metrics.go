package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics métricas Prometheus de la API. Cada instancia tiene su propio registro,
// así varias apps (tests) conviven en el mismo proceso.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requests        *prometheus.CounterVec
	apiErrors       *prometheus.CounterVec
	invitations     *prometheus.CounterVec
}

// NewMetrics registra los colectores bajo el namespace dado (ej. "salesflow").
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total de peticiones a la API",
		}, []string{"method", "path"}),
		apiErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total de respuestas con estado >= 400",
		}, []string{"method", "path", "status"}),
		invitations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitations_total",
			Help:      "Invitaciones procesadas por resultado",
		}, []string{"result"}),
	}
}

// Middleware mide cada petición. La etiqueta path es el patrón de la ruta
// (/api/meetings/:id/status), no la URL concreta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		path := c.Route().Path
		method := c.Method()
		code := strconv.Itoa(status)

		m.requests.WithLabelValues(method, path).Inc()
		m.requestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		if status >= fiber.StatusBadRequest {
			m.apiErrors.WithLabelValues(method, path, code).Inc()
		}
		return err
	}
}

// RecordInvitation cuenta una invitación: "sent", "rejected" o "failed".
func (m *Metrics) RecordInvitation(result string) {
	if m == nil {
		return
	}
	m.invitations.WithLabelValues(result).Inc()
}

// Handler expone /metrics en formato de exposición de Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
