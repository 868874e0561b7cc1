package ranking

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_cache_lookups_total",
			Help: "Count of TTL cache lookups by cache (signals, rerank) and outcome (hit, miss).",
		},
		[]string{"cache", "outcome"},
	)

	NLUCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_nlu_calls_total",
			Help: "Count of external NLU collaborator calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(CacheLookupsTotal, NLUCallsTotal)
}
