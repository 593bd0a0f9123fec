package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// PricingCalculationsTotal counts price calculations by outcome.
	PricingCalculationsTotal *prometheus.CounterVec
	// PricingDiscountLinesTotal counts emitted discount lines by discount code.
	PricingDiscountLinesTotal *prometheus.CounterVec
	// PricingGrandTotal observes quoted grand totals in currency units.
	PricingGrandTotal prometheus.Histogram
	// CheckoutOrdersTotal counts checkout attempts by outcome.
	CheckoutOrdersTotal *prometheus.CounterVec
	// OrderTransitionsTotal counts order status transitions by target status.
	OrderTransitionsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		PricingCalculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_calculations_total",
			Help:      "Count of price calculations by outcome.",
		}, []string{"result"})
		PricingDiscountLinesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_discount_lines_total",
			Help:      "Count of discount lines emitted by code.",
		}, []string{"code"})
		PricingGrandTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pricing_grand_total",
			Help:      "Distribution of quoted grand totals.",
			Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		})
		CheckoutOrdersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_orders_total",
			Help:      "Count of checkout attempts by outcome.",
		}, []string{"result"})
		OrderTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Count of order status transitions.",
		}, []string{"status"})

		mustRegisterCollector(reg, PricingCalculationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PricingCalculationsTotal = v
			}
		})
		mustRegisterCollector(reg, PricingDiscountLinesTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PricingDiscountLinesTotal = v
			}
		})
		mustRegisterCollector(reg, PricingGrandTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				PricingGrandTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutOrdersTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutOrdersTotal = v
			}
		})
		mustRegisterCollector(reg, OrderTransitionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderTransitionsTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
