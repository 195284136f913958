package collection

import (
	"log/slog"
	"reflect"

	"github.com/signadot/mutcoll/metrics"
)

// Spec holds the runtime specification of a collection.
// Config contains the serializable settings, possibly loaded from a file.
type Spec struct {
	Config  *Config
	Log     *slog.Logger
	Metrics *metrics.Metrics
}

func (s *Spec) withDefaults() *Spec {
	res := &Spec{}
	if s != nil {
		*res = *s
	}
	if res.Config == nil {
		res.Config = DefaultConfig()
	}
	if res.Log == nil {
		res.Log = slog.Default()
	}
	return res
}

// Option customizes a collection at construction.
type Option[T any] func(*Collection[T])

// WithEqual sets the equality used to diff plain values when the whole
// value is replaced. The default is reflect.DeepEqual.
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(c *Collection[T]) { c.eq = eq }
}

// WithSink replaces the default Streams sink. The collection calls Emit
// with its lock held, so s must not call back into the collection.
func WithSink[T any](s Sink[T]) Option[T] {
	return func(c *Collection[T]) { c.sink = s }
}

func deepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
