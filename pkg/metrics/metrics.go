package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts handled HTTP requests by route, method and status
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "remindd_http_requests_total",
		Help: "Total number of HTTP requests handled",
	},
	[]string{"path", "method", "status"},
)

// HTTPRequestDuration records request latency distribution per route
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "remindd_http_request_duration_seconds",
		Help:    "Latency in seconds to handle HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"path", "method"},
)

// EmailsDispatched counts outbound email attempts by outcome (sent/failed/denied)
var EmailsDispatched = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "remindd_emails_dispatched_total",
		Help: "Total number of outbound email dispatch attempts",
	},
	[]string{"outcome"},
)

// EventsCreated counts documents inserted into the events collection
var EventsCreated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "remindd_events_created_total",
		Help: "Total number of events created",
	},
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(EmailsDispatched, EventsCreated)
}
