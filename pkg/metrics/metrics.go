// Package metrics exposes Prometheus collectors for the contact endpoint.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes.
const (
	OutcomeAccepted      = "accepted"
	OutcomeHoneypot      = "rejected_honeypot"
	OutcomeMissing       = "rejected_missing_fields"
	OutcomeInvalidEmail  = "rejected_invalid_email"
	OutcomeNotConfigured = "not_configured"
	OutcomeStorageError  = "storage_error"
)

// Collector records submission pipeline events.
type Collector interface {
	RecordSubmission(outcome string)
	ObserveStorageWrite(backend string, d time.Duration, err error)
	RecordHTTPRequest(method string, status int)
}

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	SubmissionsTotal  *prometheus.CounterVec
	StorageWrite      *prometheus.HistogramVec
	HTTPRequestsTotal *prometheus.CounterVec
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		StorageWrite: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "contact",
			Name:      "storage_write_seconds",
			Help:      "Time spent writing submission records",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "result"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code",
		}, []string{"method", "status"}),
	}
	m.registry.MustRegister(m.SubmissionsTotal, m.StorageWrite, m.HTTPRequestsTotal)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSubmission(outcome string) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveStorageWrite(backend string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StorageWrite.WithLabelValues(backend, result).Observe(d.Seconds())
}

func (m *Metrics) RecordHTTPRequest(method string, status int) {
	m.HTTPRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordSubmission(string)                          {}
func (Nop) ObserveStorageWrite(string, time.Duration, error) {}
func (Nop) RecordHTTPRequest(string, int)                    {}
