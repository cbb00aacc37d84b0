// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notpickedup"

// Metrics holds every collector. Create one per registry; registering the same
// collectors twice on one registry panics.
type Metrics struct {
	BulkDispatches *prometheus.CounterVec
	OrdersMarked   prometheus.Counter
	OrdersSkipped  prometheus.Counter
	StatusOrders   *prometheus.GaugeVec

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		BulkDispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bulk",
				Name:      "dispatches_total",
				Help:      "Bulk actions dispatched from the admin order list, by result.",
			},
			[]string{"action", "result"},
		),
		OrdersMarked: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bulk",
				Name:      "orders_marked_total",
				Help:      "Orders moved to Not Picked Up by the bulk action.",
			},
		),
		OrdersSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bulk",
				Name:      "orders_skipped_total",
				Help:      "Selected order ids that did not resolve to an order.",
			},
		),
		StatusOrders: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "by_status",
				Help:      "Number of orders per status as of the last count refresh.",
			},
			[]string{"status"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
	}
}
