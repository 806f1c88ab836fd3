package metrics

import "github.com/prometheus/client_golang/prometheus"

// CartMetrics counts cart mutations by operation and result.
type CartMetrics struct {
	ops *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart mutations by operation and result.",
	}, []string{"op", "result"})
	reg.MustRegister(ops)
	return &CartMetrics{ops: ops}
}

// ObserveOp records one cart mutation.
func (c *CartMetrics) ObserveOp(op string, err error) {
	if c == nil || c.ops == nil {
		return
	}
	c.ops.WithLabelValues(normalizeLabel(op), resultLabel(err)).Inc()
}
