package receipt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var renderDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "receipt_render_duration_seconds",
		Help:    "Time spent building a receipt PDF",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1},
	},
)
