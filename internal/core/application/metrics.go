package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "nimbusd",
		Name:      "snapshot_refresh_total",
		Help:      "Number of snapshot refresh cycles completed.",
	})
	refreshErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "nimbusd",
		Name:      "snapshot_refresh_errors_total",
		Help:      "Number of snapshot refresh cycles that failed.",
	})
	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nimbusd",
		Name:      "snapshot_refresh_duration_seconds",
		Help:      "Duration of snapshot refresh cycles.",
		Buckets:   prometheus.DefBuckets,
	})
)
