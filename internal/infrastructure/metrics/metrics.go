// Package metrics expone contadores Prometheus de precios, movimientos de stock, caché y HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/vidrieria-api/internal/application/inventory"
	"github.com/jhoicas/vidrieria-api/internal/application/pricing"
	"github.com/jhoicas/vidrieria-api/internal/infrastructure/cache"
)

var (
	_ pricing.Metrics   = (*Metrics)(nil)
	_ inventory.Metrics = (*Metrics)(nil)
	_ cache.Metrics     = (*Metrics)(nil)
)

const namespace = "vidrieria"

// Metrics agrupa los collectors en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	pricedLines       *prometheus.CounterVec
	missingReferences *prometheus.CounterVec
	movements         *prometheus.CounterVec
	rejected          *prometheus.CounterVec
	cacheRequests     *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New registra todos los collectors, más los de proceso y runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pricedLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "priced_lines_total",
			Help: "Líneas de cotización calculadas, por tipo (product, service).",
		}, []string{"kind"}),
		missingReferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "missing_catalog_references_total",
			Help: "Referencias a procesos o ítems inexistentes valoradas en cero.",
		}, []string{"kind"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "stock_movements_total",
			Help: "Transacciones de stock registradas, por tipo.",
		}, []string{"type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "stock_movements_rejected_total",
			Help: "Movimientos rechazados, por tipo y motivo.",
		}, []string{"type", "reason"}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "catalog_cache_requests_total",
			Help: "Lecturas de la caché del catálogo (hit, miss, error).",
		}, []string{"kind", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pricedLines, m.missingReferences, m.movements, m.rejected,
		m.cacheRequests, m.httpRequests, m.httpDuration,
	)
	return m
}

func (m *Metrics) ObservePricedLine(kind string)       { m.pricedLines.WithLabelValues(kind).Inc() }
func (m *Metrics) ObserveMissingReference(kind string) { m.missingReferences.WithLabelValues(kind).Inc() }
func (m *Metrics) ObserveMovement(txType string)       { m.movements.WithLabelValues(txType).Inc() }

func (m *Metrics) ObserveRejectedMovement(txType, reason string) {
	m.rejected.WithLabelValues(txType, reason).Inc()
}

func (m *Metrics) ObserveCache(kind, result string) {
	m.cacheRequests.WithLabelValues(kind, result).Inc()
}

// ObserveHTTP registra una petición. route es el patrón de la ruta, no la URL concreta.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Gatherer registry subyacente.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
