package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "annocheck_fetch_requests_total",
		Help: "Upstream publication fetch requests issued.",
	})

	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "annocheck_fetch_errors_total",
		Help: "Publication fetches that failed after retries.",
	})

	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "annocheck_fetch_cache_hits_total",
		Help: "Publication cache hits by tier.",
	}, []string{"tier"})
)
