// file: internal/metrics/metrics.go
// version: 1.1.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	lookupStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aladin_lookup",
		Name:      "lookups_started_total",
		Help:      "Total number of lookups started by query kind",
	}, []string{"kind"})
	lookupCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aladin_lookup",
		Name:      "lookups_completed_total",
		Help:      "Total number of lookups that returned at least one record by query kind",
	}, []string{"kind"})
	lookupNoMatch = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aladin_lookup",
		Name:      "lookups_no_match_total",
		Help:      "Total number of lookups that found no matching book by query kind",
	}, []string{"kind"})
	lookupFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aladin_lookup",
		Name:      "lookups_failed_total",
		Help:      "Total number of lookups that failed operationally by query kind",
	}, []string{"kind"})
	lookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aladin_lookup",
		Name:      "lookup_duration_seconds",
		Help:      "Histogram of lookup durations in seconds by query kind",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 10), // ~50ms up to tens of seconds
	}, []string{"kind"})

	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "aladin_lookup",
		Name:      "result_cache_hits_total",
		Help:      "Lookups served from the in-memory result cache",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "aladin_lookup",
		Name:      "result_cache_misses_total",
		Help:      "Lookups that had to go to the site",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(lookupStarted, lookupCompleted, lookupNoMatch, lookupFailed,
			lookupDuration, cacheHits, cacheMisses)
	})
}

// Lookup lifecycle helpers
func IncLookupStarted(kind string)   { lookupStarted.WithLabelValues(kind).Inc() }
func IncLookupCompleted(kind string) { lookupCompleted.WithLabelValues(kind).Inc() }
func IncLookupNoMatch(kind string)   { lookupNoMatch.WithLabelValues(kind).Inc() }
func IncLookupFailed(kind string)    { lookupFailed.WithLabelValues(kind).Inc() }
func ObserveLookupDuration(kind string, d time.Duration) {
	lookupDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Result cache helpers
func IncCacheHit()  { cacheHits.Inc() }
func IncCacheMiss() { cacheMisses.Inc() }
