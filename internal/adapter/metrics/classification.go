package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pscheid92/commentpulse/internal/domain"
)

// ClassificationMetrics holds Prometheus metrics for the normalize/classify pipeline.
type ClassificationMetrics struct {
	CommentsClassified     *prometheus.CounterVec
	OracleDuration         prometheus.Histogram
	OracleErrors           prometheus.Counter
	DegradedNormalizations *prometheus.CounterVec
}

// NewClassificationMetrics creates and registers classification metrics on the given registry.
func NewClassificationMetrics(reg prometheus.Registerer) *ClassificationMetrics {
	m := &ClassificationMetrics{
		CommentsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_classified_total",
			Help:      "Total number of classified comments, by sentiment label.",
		}, []string{"sentiment"}),
		OracleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "request_duration_seconds",
			Help:      "Duration of classification oracle calls in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		OracleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "errors_total",
			Help:      "Total number of failed classification oracle calls.",
		}),
		DegradedNormalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalization_degraded_total",
			Help:      "Total number of comments whose normalization fell back to partial text, by stage.",
		}, []string{"stage"}),
	}

	reg.MustRegister(m.CommentsClassified, m.OracleDuration, m.OracleErrors, m.DegradedNormalizations)
	return m
}

// ObserveClassification records one oracle call and the labels it produced.
func (m *ClassificationMetrics) ObserveClassification(d time.Duration, labels []domain.Label, err error) {
	m.OracleDuration.Observe(d.Seconds())
	if err != nil {
		m.OracleErrors.Inc()
		return
	}
	for _, l := range labels {
		m.CommentsClassified.WithLabelValues(l.Key()).Inc()
	}
}

// NormalizationDegraded implements normalize.DegradationObserver.
func (m *ClassificationMetrics) NormalizationDegraded(stage string) {
	m.DegradedNormalizations.WithLabelValues(stage).Inc()
}
