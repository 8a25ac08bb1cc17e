package mapper

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "es_mapper"

type metrics struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	classified prometheus.Counter
	cached     prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Mapping requests served from the cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "Mapping computations started for uncached types.",
		}),
		classified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fields_classified_total",
			Help:      "Fields passed through the classifier.",
		}),
		cached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cached_types",
			Help:      "Type mappings held in the cache.",
		}),
	}

	if reg == nil {
		return m
	}

	m.hits = register(reg, m.hits)
	m.misses = register(reg, m.misses)
	m.classified = register(reg, m.classified)
	m.cached = register(reg, m.cached)

	return m
}

// register adds c to reg, reusing the collector already registered under
// the same name.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}

	panic(err)
}
