package adapters

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records client side request and job counters. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Jobs     *prometheus.CounterVec
}

const (
	JobEventCreated   = "created"
	JobEventCompleted = "completed"
	JobEventFailed    = "failed"
	JobEventCursor    = "cursor"
)

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bugout_client_requests_total",
			Help: "Requests sent to Bugout services, by status (599 when no response was received)",
		}, []string{"service", "method", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bugout_client_request_duration_seconds",
			Help:    "Latency of requests sent to Bugout services",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method"}),
		Jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bugout_jobs_total",
			Help: "Job queue writes, by queue context type and event",
		}, []string{"context_type", "event"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration, m.Jobs)
	}
	return m
}

func (m *Metrics) observeRequest(service string, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(service, method, strconv.Itoa(status)).Inc()
	m.Duration.WithLabelValues(service, method).Observe(elapsed.Seconds())
}

func (m *Metrics) jobEvent(contextType string, event string) {
	if m == nil {
		return
	}
	m.Jobs.WithLabelValues(contextType, event).Inc()
}
