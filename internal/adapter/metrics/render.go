package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pscheid92/commentpulse/internal/domain"
)

// RenderMetrics holds Prometheus metrics for chart rendering.
type RenderMetrics struct {
	ChartsRendered *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
}

// NewRenderMetrics creates and registers chart rendering metrics on the given registry.
func NewRenderMetrics(reg prometheus.Registerer) *RenderMetrics {
	m := &RenderMetrics{
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "charts_total",
			Help:      "Total number of chart render attempts, by kind and result.",
		}, []string{"kind", "result"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Duration of chart rendering in seconds, by kind.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"kind"}),
	}

	reg.MustRegister(m.ChartsRendered, m.RenderDuration)
	return m
}

// ObserveRender records one render call.
func (m *RenderMetrics) ObserveRender(kind domain.ChartKind, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ChartsRendered.WithLabelValues(string(kind), result).Inc()
	m.RenderDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}
