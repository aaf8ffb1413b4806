package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hidingbook",
			Name:      "upstream_requests_total",
			Help:      "Upstream REST requests by endpoint and outcome.",
		},
		[]string{"upstream", "endpoint", "status"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hidingbook",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream REST latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"upstream", "endpoint"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hidingbook",
			Name:      "cache_lookups_total",
			Help:      "Memo cache lookups by function and result (hit/miss/error).",
		},
		[]string{"fn", "result"},
	)

	DroppedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hidingbook",
			Name:      "normalize_dropped_total",
			Help:      "Upstream records dropped during normalization.",
		},
		[]string{"stage", "reason"},
	)
)

var registerOnce sync.Once

// MustRegister registers the collectors on the default registry once.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(UpstreamRequests, UpstreamDuration, CacheLookups, DroppedRecords)
	})
}
