package collectors

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCollectTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "browserhome",
		Name:      "collect_total",
		Help:      "Collection cycles run per collector, by outcome.",
	}, []string{"collector", "outcome"})
	metricCollectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "browserhome",
		Name:      "collect_duration_seconds",
		Help:      "Wall time of a single collection cycle.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collector"})
)

func recordCollect(name string, latency time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metricCollectTotal.WithLabelValues(name, outcome).Inc()
	metricCollectDuration.WithLabelValues(name).Observe(latency.Seconds())
}
