package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics tracks order placement and cancellation outcomes.
type CheckoutMetrics struct {
	placed    *prometheus.CounterVec
	cancelled prometheus.Counter
	duration  prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Orders cancelled with stock released.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of the checkout transaction in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(placed, cancelled, duration)
	return &CheckoutMetrics{
		placed:    placed,
		cancelled: cancelled,
		duration:  duration,
	}
}

// IncPlaced records an order placement attempt with the given outcome label.
func (c *CheckoutMetrics) IncPlaced(outcome string) {
	if c == nil || c.placed == nil {
		return
	}
	c.placed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCancelled records a completed cancellation.
func (c *CheckoutMetrics) IncCancelled() {
	if c == nil || c.cancelled == nil {
		return
	}
	c.cancelled.Inc()
}

// ObserveDuration records how long the checkout transaction took.
func (c *CheckoutMetrics) ObserveDuration(elapsed time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.Observe(elapsed.Seconds())
}
