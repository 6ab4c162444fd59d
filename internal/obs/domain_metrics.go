package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ShoppingListRendersTotal counts shopping list builds by format and outcome.
	ShoppingListRendersTotal *prometheus.CounterVec
	// ShoppingListEntries records how many aggregated entries a rendered list holds.
	ShoppingListEntries *prometheus.HistogramVec
	// ShoppingListRenderLatency records build latency in milliseconds.
	ShoppingListRenderLatency *prometheus.HistogramVec
	// RecipeListChangesTotal counts cart and favorites membership changes.
	RecipeListChangesTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ShoppingListRendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shopping_list_renders_total",
			Help:      "Count of shopping list builds by format and outcome.",
		}, []string{"format", "result"})
		ShoppingListEntries = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shopping_list_entries",
			Help:      "Number of aggregated ingredient entries per rendered shopping list.",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250},
		}, []string{"format"})
		ShoppingListRenderLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shopping_list_render_duration_ms",
			Help:      "Latency of shopping list builds in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"format"})
		RecipeListChangesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_list_changes_total",
			Help:      "Count of shopping cart and favorites membership changes.",
		}, []string{"list", "action", "result"})

		mustRegisterCollector(reg, ShoppingListRendersTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ShoppingListRendersTotal = v
			}
		})
		mustRegisterCollector(reg, ShoppingListEntries, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				ShoppingListEntries = v
			}
		})
		mustRegisterCollector(reg, ShoppingListRenderLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				ShoppingListRenderLatency = v
			}
		})
		mustRegisterCollector(reg, RecipeListChangesTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				RecipeListChangesTotal = v
			}
		})
	})
}

// ObserveRecipeListChange records a cart or favorites membership change.
func ObserveRecipeListChange(list, action, result string) {
	if RecipeListChangesTotal != nil {
		RecipeListChangesTotal.WithLabelValues(list, action, result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register metric: %w", err))
	}
}
