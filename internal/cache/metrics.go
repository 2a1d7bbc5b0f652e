package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_hits_total",
			Help: "Fetches served straight from a fresh cache entry",
		},
		[]string{"kind"},
	)

	misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_misses_total",
			Help: "Fetches that had to run the loader (absent or stale entry)",
		},
		[]string{"kind"},
	)

	coalesced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_coalesced_total",
			Help: "Fetches that shared an in-flight load instead of issuing their own",
		},
		[]string{"kind"},
	)
)
