package services

import "github.com/prometheus/client_golang/prometheus"

var (
	dashboardBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_builds_total",
			Help: "Dashboard loads by outcome",
		},
		[]string{"outcome"},
	)
	goalsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_goals_dropped_total",
			Help: "Active goals left out of evaluation because their metric is unknown",
		},
	)
	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of calls to the upstream API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

// Collectors are the service metrics to register next to the HTTP ones.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{dashboardBuilds, goalsDropped, upstreamDuration}
}
