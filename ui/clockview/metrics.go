package clockview

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ticks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "clock_ticks_total",
	Help: "Number of timer ticks handled",
})

var modelChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "clock_model_changes_total",
	Help: "Number of model field changes",
}, []string{"field"})

var renderRequestsCancelled = promauto.NewCounter(prometheus.CounterOpts{
	Name: "clock_render_requests_cancelled_total",
	Help: "Number of pending renders replaced by a newer request",
})

var renders = promauto.NewCounter(prometheus.CounterOpts{
	Name: "clock_renders_total",
	Help: "Number of renders that ran",
})

var renderMutations = promauto.NewCounter(prometheus.CounterOpts{
	Name: "clock_render_mutations_total",
	Help: "Number of surface mutations made by renders",
})

var renderErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "clock_render_errors_total",
	Help: "Number of failed renders",
})

var renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "clock_render_duration_seconds",
	Help:    "Time spent diffing, patching and painting",
	Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
})
