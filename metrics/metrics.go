// Package metrics records collection activity as prometheus metrics.
//
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "collection"

type Metrics struct {
	mutations *prometheus.CounterVec
	changes   *prometheus.CounterVec
	diffSize  prometheus.Histogram
	failures  *prometheus.CounterVec
	watchers  *prometheus.GaugeVec
}

// New creates the collection metrics and registers them with reg. A metric
// that is already registered with the same description is reused, so
// several collections may share a registry.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mutations_total",
			Help:      "Mutations applied, by operation.",
		}, []string{"op"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "changes_total",
			Help:      "Leaf changes emitted, by operation (insertion or removal).",
		}, []string{"operation"}),
		diffSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "diff_size",
			Help:      "Length of edit scripts computed when replacing a whole value.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "Rejected mutations, by operation and error kind.",
		}, []string{"op", "kind"}),
		watchers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "watchers",
			Help:      "Active stream watchers, by stream.",
		}, []string{"stream"}),
	}
	var err error
	if m.mutations, err = register(reg, m.mutations); err != nil {
		return nil, err
	}
	if m.changes, err = register(reg, m.changes); err != nil {
		return nil, err
	}
	if m.diffSize, err = register(reg, m.diffSize); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	if m.watchers, err = register(reg, m.watchers); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

func (m *Metrics) Mutation(op string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op).Inc()
}

// Changes counts n leaf changes of the given operation.
func (m *Metrics) Changes(operation string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.changes.WithLabelValues(operation).Add(float64(n))
}

func (m *Metrics) DiffSize(n int) {
	if m == nil {
		return
	}
	m.diffSize.Observe(float64(n))
}

func (m *Metrics) Failure(op, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op, kind).Inc()
}

func (m *Metrics) Watchers(stream string, n int) {
	if m == nil {
		return
	}
	m.watchers.WithLabelValues(stream).Set(float64(n))
}
