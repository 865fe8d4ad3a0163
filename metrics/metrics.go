// Package metrics exposes prometheus instruments for maze solving.
package metrics

import (
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-mazesolver/maze/bfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mazesolver",
		Name:      "solves_total",
		Help:      "Total number of maze solves by outcome",
	}, []string{"outcome"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mazesolver",
		Name:      "solve_duration_seconds",
		Help:      "Time spent in breadth-first search",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	expandedNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mazesolver",
		Name:      "expanded_nodes",
		Help:      "Nodes dequeued per solve",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	})

	pathLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mazesolver",
		Name:      "path_length_hops",
		Help:      "Hops along found paths",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mazesolver",
		Name:      "cache_lookups_total",
		Help:      "Solution cache lookups by result",
	}, []string{"result"})
)

// ObserveSolve records a finished search.
func ObserveSolve(st bfs.Stats, elapsed time.Duration) {
	solveDuration.Observe(elapsed.Seconds())
	expandedNodes.Observe(float64(st.Expanded))
	if st.Found {
		solvesTotal.WithLabelValues(OutcomeFound).Inc()
		pathLength.Observe(float64(st.PathLength))
		return
	}
	solvesTotal.WithLabelValues(OutcomeNotFound).Inc()
}

// ObserveSolveError counts a solve that failed before producing a result.
func ObserveSolveError() {
	solvesTotal.WithLabelValues(OutcomeError).Inc()
}

// ObserveCacheLookup counts a cache hit or miss.
func ObserveCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
