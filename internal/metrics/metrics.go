package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChecksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fsapi_checks_total",
		Help: "Total number of federal-state checks",
	})
	CheckDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fsapi_check_duration_ms",
		Help:    "Check duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	NotInGermanyTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fsapi_not_in_germany_total",
		Help: "Total number of checks with no federal-state match",
	})
	MatchedStates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fsapi_matched_states",
		Help:    "Number of federal states matched per check",
		Buckets: []float64{0, 1, 2, 3, 4, 8, 16},
	})
	RedisHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fsapi_redis_hits_total",
		Help: "Total redis cache hits",
	})
	RedisMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fsapi_redis_misses_total",
		Help: "Total redis cache misses",
	})
	RefReloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fsapi_ref_reloads_total",
		Help: "Total reference-layer reloads",
	})
	IngestFeaturesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fsapi_ingest_features_total",
		Help: "Total boundary features ingested into the database",
	})
)

func init() {
	prometheus.MustRegister(ChecksTotal)
	prometheus.MustRegister(CheckDurationMs)
	prometheus.MustRegister(NotInGermanyTotal)
	prometheus.MustRegister(MatchedStates)
	prometheus.MustRegister(RedisHitsTotal)
	prometheus.MustRegister(RedisMissesTotal)
	prometheus.MustRegister(RefReloadsTotal)
	prometheus.MustRegister(IngestFeaturesTotal)
}

// Handler exposes the registered metrics for Prometheus scraping; mounted
// under the API base path by the server entrypoint.
func Handler() http.Handler { return promhttp.Handler() }
