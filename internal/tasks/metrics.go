package tasks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasklist_store_mutations_total",
			Help: "Store mutations by operation and outcome (applied, ignored, error)",
		},
		[]string{"op", "status"},
	)

	loadFallbackCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasklist_store_load_fallbacks_total",
			Help: "Persisted collections replaced by defaults on load",
		},
		[]string{"key", "reason"},
	)

	persistDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tasklist_store_persist_duration_seconds",
			Help:    "Duration of a write-through persist per key",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"key"},
	)

	taskTextLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tasklist_task_text_length_bytes",
			Help:    "Length distribution of added task texts",
			Buckets: []float64{10, 50, 100, 500},
		},
	)
)
