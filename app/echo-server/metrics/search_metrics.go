package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the venue search HTTP handler
	SearchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "venue_search_latency_seconds",
		Help:    "Latency of venue search handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of venue searches served
	SearchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "venue_search_requests_total",
		Help: "Total number of venue search requests",
	})
)

func Init() {
	prometheus.MustRegister(
		SearchLatency,
		SearchRequests,
	)
}
