package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	productionRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "production_runs_total",
			Help: "Total number of production runs by outcome",
		},
		[]string{"status"},
	)

	ordersRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_recorded_total",
			Help: "Total number of sale interactions recorded",
		},
	)
)

// Metrics middleware de metricas prometheus por peticion. Usa la plantilla
// de la ruta para no dispersar cardinalidad con ids.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}

// CountProductionRun registra el resultado de una orden de produccion.
func CountProductionRun(status string) {
	productionRunsTotal.WithLabelValues(status).Inc()
}

// CountOrderRecorded registra un pedido anotado.
func CountOrderRecorded() {
	ordersRecorded.Inc()
}
