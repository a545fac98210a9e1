package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared by the API and the outbox worker.
type Metrics struct {
	RequestsTotal           *prometheus.CounterVec
	RequestDuration         *prometheus.HistogramVec
	OutboxEventsProcessed   prometheus.Counter
	OutboxEventsFailed      prometheus.Counter
	OutboxProcessingLatency prometheus.Histogram
	DatabaseOperations      *prometheus.CounterVec
}

func New(prefix string) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OutboxEventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_outbox_events_processed_total",
			Help: "Total number of outbox events published successfully",
		}),
		OutboxEventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_outbox_events_failed_total",
			Help: "Total number of outbox events that failed to publish",
		}),
		OutboxProcessingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: prefix + "_outbox_processing_seconds",
			Help: "Latency of one outbox processing pass",
		}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_database_operations_total",
			Help: "Database operations by name and outcome",
		}, []string{"operation", "status"}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.OutboxEventsProcessed,
		m.OutboxEventsFailed,
		m.OutboxProcessingLatency,
		m.DatabaseOperations,
	)

	return m
}
