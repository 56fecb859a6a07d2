// Package metrics exposes the Prometheus instrumentation for the
// region lookup service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiond_lookups_total",
		Help: "Total number of point lookup requests",
	})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "regiond_lookup_duration_ms",
		Help:    "Point lookup duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	LookupCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiond_lookup_cache_hits_total",
		Help: "Total point lookups answered from the cell cache",
	})
	LookupCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiond_lookup_cache_misses_total",
		Help: "Total point lookups that missed the cell cache",
	})
	EmptyLookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiond_empty_lookups_total",
		Help: "Total point lookups matching no region",
	})
	SelectionChangesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiond_selection_changes_total",
		Help: "Total successful region selections",
	})
	PicksRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "regiond_picks_rejected_total",
		Help: "Total pick attempts outside the selected region",
	})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(LookupCacheHitsTotal)
	prometheus.MustRegister(LookupCacheMissesTotal)
	prometheus.MustRegister(EmptyLookupsTotal)
	prometheus.MustRegister(SelectionChangesTotal)
	prometheus.MustRegister(PicksRejectedTotal)
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
