package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics holds Prometheus metrics for the prediction cache.
type CacheMetrics struct {
	Hits   prometheus.Counter
	Misses prometheus.Counter
	Errors *prometheus.CounterVec
}

// NewCacheMetrics creates and registers prediction cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prediction_cache",
			Name:      "hits_total",
			Help:      "Total number of comments whose label was served from the prediction cache.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prediction_cache",
			Name:      "misses_total",
			Help:      "Total number of comments forwarded to the classification oracle.",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prediction_cache",
			Name:      "errors_total",
			Help:      "Total number of prediction cache failures, by operation.",
		}, []string{"op"}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Errors)
	return m
}

func (m *CacheMetrics) CacheHits(n int)   { m.Hits.Add(float64(n)) }
func (m *CacheMetrics) CacheMisses(n int) { m.Misses.Add(float64(n)) }
func (m *CacheMetrics) CacheError(op string) {
	m.Errors.WithLabelValues(op).Inc()
}
