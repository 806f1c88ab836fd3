package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records upstream catalog fetches.
type CatalogMetrics struct {
	duration *prometheus.HistogramVec
	fetches  *prometheus.CounterVec
	cached   prometheus.Gauge
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_fetch_duration_seconds",
		Help:      "Duration of upstream catalog fetches in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fetch_total",
		Help:      "Upstream catalog fetches by result.",
	}, []string{"result"})
	cached := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_cached_products",
		Help:      "Number of products held in the catalog cache.",
	})
	reg.MustRegister(duration, fetches, cached)
	return &CatalogMetrics{duration: duration, fetches: fetches, cached: cached}
}

// ObserveFetch records the outcome of one upstream fetch.
func (c *CatalogMetrics) ObserveFetch(err error, elapsed time.Duration) {
	if c == nil || c.fetches == nil {
		return
	}
	result := resultLabel(err)
	c.fetches.WithLabelValues(result).Inc()
	c.duration.WithLabelValues(result).Observe(elapsed.Seconds())
}

// SetCached records the current cache size.
func (c *CatalogMetrics) SetCached(n int) {
	if c == nil || c.cached == nil {
		return
	}
	c.cached.Set(float64(n))
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
