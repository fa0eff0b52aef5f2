// Package metrics holds the application's prometheus collectors and shared
// histogram settings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// FetchDuration tracks how long scraping a profile takes, labeled by the
	// kind of listing (media or posts) and the requested media type. Scrape
	// latencies dwarf the default buckets, so wider ones are appended.
	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "instagrab",
		Subsystem: "fetcher",
		Name:      "fetch_duration_seconds",
		Help:      "Time spent collecting links from a profile.",
		Buckets:   append(DefaultBuckets, 30, 60, 120),
	}, []string{"kind", "media_type"})

	// CacheRequests counts cache lookups by result (hit, miss or error).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "instagrab",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Cache lookups partitioned by result.",
	}, []string{"result"})
)
