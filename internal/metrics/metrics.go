package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Houeta/phone-insights/internal/llm"
	"github.com/Houeta/phone-insights/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "phone_insights"

// Metrics holds every collector of the service.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	llmCompletions *prometheus.CounterVec
	llmDuration    *prometheus.HistogramVec
	specsUpdated   prometheus.Counter
	catalogChanges *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Count of completed requests, by route, method and response status",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Request latency by route and method",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		llmCompletions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_completions_total",
				Help:      "LLM completions by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		llmDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_completion_duration_seconds",
				Help:      "LLM completion latency by provider",
				Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to 32s
			},
			[]string{"provider"},
		),
		specsUpdated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "specs_updated_total",
				Help:      "Phones whose specs were written from an LLM completion",
			},
		),
		catalogChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_changes_total",
				Help:      "Catalog import changes by kind",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.llmCompletions, m.llmDuration,
		m.specsUpdated, m.catalogChanges,
	)

	return m
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveCompletion implements llm.Observer.
func (m *Metrics) ObserveCompletion(provider string, elapsed time.Duration, err error) {
	m.llmCompletions.WithLabelValues(provider, outcome(err)).Inc()
	m.llmDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, llm.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, llm.ErrCreditsExhausted):
		return "credits_exhausted"
	case errors.Is(err, llm.ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}

// SpecsUpdated counts a successful spec write.
func (m *Metrics) SpecsUpdated() {
	m.specsUpdated.Inc()
}

// CatalogChanged records the result of a catalog import.
func (m *Metrics) CatalogChanged(changes *models.CatalogChanges) {
	if changes == nil {
		return
	}
	m.catalogChanges.WithLabelValues("added").Add(float64(len(changes.Added)))
	m.catalogChanges.WithLabelValues("removed").Add(float64(len(changes.Removed)))
	m.catalogChanges.WithLabelValues("price_changed").Add(float64(len(changes.Changed)))
}
