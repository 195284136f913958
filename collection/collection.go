package collection

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/debug"
	"github.com/signadot/mutcoll/metrics"
	"github.com/signadot/mutcoll/section"
)

// Collection is an observable nested collection. It is safe for concurrent
// use; mutations are serialized and each emits one Event.
type Collection[T any] struct {
	mu      sync.RWMutex
	root    *section.Section[T]
	sink    Sink[T]
	streams *Streams[T]
	eq      func(a, b T) bool
	closed  bool
	cleanup runtime.Cleanup

	id      string
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New creates a collection holding a copy of root. A nil root is empty and
// a nil spec uses the defaults.
func New[T any](root *section.Section[T], spec *Spec, opts ...Option[T]) (*Collection[T], error) {
	spec = spec.withDefaults()
	if err := spec.Config.Validate(); err != nil {
		return nil, err
	}
	if root == nil {
		root = section.New[T]()
	}
	id := uuid.NewString()
	c := &Collection[T]{
		root:    root.Clone(),
		eq:      deepEqual[T],
		id:      id,
		log:     spec.Log.With("component", "collection", "id", id),
		metrics: spec.Metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sink == nil {
		streams, err := NewStreams(spec.Config.Watch, c.log, c.metrics, c.root.Clone().Items())
		if err != nil {
			return nil, err
		}
		c.streams = streams
		c.sink = streams
	}
	c.cleanup = runtime.AddCleanup(c, closeSink[T], c.sink)
	c.log.Debug("created", "len", c.root.Len())
	return c, nil
}

// FromValues creates a flat collection of vs.
func FromValues[T any](spec *Spec, vs ...T) (*Collection[T], error) {
	return New(section.FromValues(vs...), spec)
}

func closeSink[T any](s Sink[T]) {
	s.Close()
}

// ID identifies the collection in log records.
func (c *Collection[T]) ID() string {
	return c.id
}

// Streams returns the default sink, or nil when WithSink replaced it.
func (c *Collection[T]) Streams() *Streams[T] {
	return c.streams
}

// Close completes the sink. Further mutations fail with ErrClosed; reads
// keep working.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cleanup.Stop()
	c.sink.Close()
	c.log.Debug("closed")
}

// Value returns a deep copy of the current value.
func (c *Collection[T]) Value() []section.Slot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root.Clone().Items()
}

// Values returns the current value as plain values, false if any top level
// slot is a section.
func (c *Collection[T]) Values() ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]T, c.root.Len())
	for i, sl := range c.root.Items() {
		v, ok := sl.Value()
		if !ok {
			return nil, false
		}
		res[i] = v
	}
	return res, true
}

// Plain returns the current value as a tree of []any.
func (c *Collection[T]) Plain() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root.Plain()
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root.Len()
}

// ElementAtPath returns a copy of the slot at p.
func (c *Collection[T]) ElementAtPath(p section.Path) (section.Slot[T], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sl, err := c.root.Get(p)
	if err != nil {
		return sl, err
	}
	return sl.Clone(), nil
}

// ElementAt returns the slot at p viewed as Z.
func ElementAt[Z any, T any](c *Collection[T], p section.Path) (Z, error) {
	sl, err := c.ElementAtPath(p)
	if err != nil {
		var zero Z
		return zero, err
	}
	return section.As[Z](sl)
}

// check is called first by every mutation, with c locked.
func (c *Collection[T]) check(op string) error {
	if c.closed {
		return c.reject(op, ErrClosed)
	}
	return nil
}

func (c *Collection[T]) reject(op string, err error) error {
	c.log.Warn("mutation rejected", "op", op, "error", err)
	c.metrics.Failure(op, errKind(err))
	return err
}

func (c *Collection[T]) emitFlat(op string, fc change.Flat[section.Slot[T]]) {
	c.emit(Event[T]{Op: op, Flat: &fc, Deep: fc.Deep()})
}

func (c *Collection[T]) emitDeep(op string, dc change.Deep[section.Slot[T]]) {
	c.emit(Event[T]{Op: op, Deep: dc})
}

// emit completes ev with a snapshot and hands it to the sink, with c
// locked.
func (c *Collection[T]) emit(ev Event[T]) {
	ev.Value = c.root.Clone().Items()
	if debug.Emit() {
		debug.Logf("collection %s emit %s: %s\n", c.id, ev.Op, ev.Deep)
	}
	c.log.Debug("mutation", "op", ev.Op, "change", ev.Deep.String())
	c.metrics.Mutation(ev.Op)
	var ins, rem int
	for _, leaf := range ev.Deep.Leaves() {
		if leaf.Kind() == change.KindInsert {
			ins++
			continue
		}
		rem++
	}
	c.metrics.Changes(change.Insertion.String(), ins)
	c.metrics.Changes(change.Removal.String(), rem)
	c.sink.Emit(ev)
}

func (c *Collection[T]) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("collection %s %v", c.id, c.root.Plain())
}
