package backend

import "github.com/prometheus/client_golang/prometheus"

var (
	appliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snnd",
			Subsystem: "backend",
			Name:      "applies_total",
			Help:      "Configuration applies by result",
		},
		[]string{"backend", "result"},
	)

	applyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snnd",
			Subsystem: "backend",
			Name:      "apply_duration_seconds",
			Help:      "Time the backend took to reconfigure",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend"},
	)

	applyInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "snnd",
			Subsystem: "backend",
			Name:      "apply_inflight",
			Help:      "1 while a reconfiguration is running",
		},
	)
)

func init() {
	prometheus.MustRegister(appliesTotal, applyDuration, applyInflight)
}
