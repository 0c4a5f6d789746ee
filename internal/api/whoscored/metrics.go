package whoscored

import "github.com/prometheus/client_golang/prometheus"

var (
	pageFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchbot_page_fetches_total",
			Help: "Match page requests by fetcher and result",
		},
		[]string{"fetcher", "result"},
	)
	pageFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchbot_page_fetch_duration_seconds",
			Help:    "Time spent fetching a match page, including warm-up and mirror fallback",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"fetcher"},
	)
)

func init() {
	prometheus.MustRegister(pageFetches)
	prometheus.MustRegister(pageFetchDuration)
}
