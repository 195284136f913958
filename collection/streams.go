package collection

import (
	"log/slog"

	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/metrics"
	"github.com/signadot/mutcoll/section"
	"github.com/signadot/mutcoll/watch"
)

// Streams is the default Sink. It broadcasts each event over four hubs.
type Streams[T any] struct {
	flat    *watch.Hub[change.Flat[section.Slot[T]]]
	changes *watch.Hub[change.Deep[section.Slot[T]]]
	values  *watch.Hub[[]section.Slot[T]]
	events  *watch.Hub[Event[T]]

	bufferSize int
	metrics    *metrics.Metrics

	// sent, when set, is called after each stream broadcast of Emit.
	sent func(stream string)
}

// NewStreams creates the hubs described by cfg. When cfg replays values,
// initial is the first snapshot handed to value watchers.
func NewStreams[T any](cfg WatchConfig, log *slog.Logger, m *metrics.Metrics, initial []section.Slot[T]) (*Streams[T], error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	common := []watch.Option{watch.WithTimeout(timeout), watch.WithLogger(log)}
	valueOpts := append([]watch.Option{watch.WithName("values")}, common...)
	if cfg.Replay() {
		valueOpts = append(valueOpts, watch.WithSeed(initial))
	}
	return &Streams[T]{
		flat:       watch.NewHub[change.Flat[section.Slot[T]]](append([]watch.Option{watch.WithName("flat")}, common...)...),
		changes:    watch.NewHub[change.Deep[section.Slot[T]]](append([]watch.Option{watch.WithName("changes")}, common...)...),
		values:     watch.NewHub[[]section.Slot[T]](valueOpts...),
		events:     watch.NewHub[Event[T]](append([]watch.Option{watch.WithName("events")}, common...)...),
		bufferSize: cfg.BufferSize,
		metrics:    m,
	}, nil
}

// Emit broadcasts the flat change, then the deep change, then the
// snapshot, then the whole event.
func (s *Streams[T]) Emit(ev Event[T]) {
	failed := 0
	if ev.Flat != nil {
		failed += s.flat.Broadcast(*ev.Flat)
		s.mark("flat")
	}
	failed += s.changes.Broadcast(ev.Deep)
	s.mark("changes")
	failed += s.values.Broadcast(ev.Value)
	s.mark("values")
	failed += s.events.Broadcast(ev)
	s.mark("events")
	if failed != 0 {
		s.recordWatchers()
	}
}

func (s *Streams[T]) mark(stream string) {
	if s.sent != nil {
		s.sent(stream)
	}
}

// Close completes every stream.
func (s *Streams[T]) Close() {
	s.flat.Close()
	s.changes.Close()
	s.values.Close()
	s.events.Close()
	s.recordWatchers()
}

// FlatChanges watches changes of mutations addressed by index. A
// non-positive bufferSize uses the configured size.
func (s *Streams[T]) FlatChanges(bufferSize int) *watch.Watcher[change.Flat[section.Slot[T]]] {
	defer s.recordWatchers()
	return s.flat.Watch(s.size(bufferSize))
}

// Changes watches the changes of every mutation.
func (s *Streams[T]) Changes(bufferSize int) *watch.Watcher[change.Deep[section.Slot[T]]] {
	defer s.recordWatchers()
	return s.changes.Watch(s.size(bufferSize))
}

// Values watches snapshots.
func (s *Streams[T]) Values(bufferSize int) *watch.Watcher[[]section.Slot[T]] {
	defer s.recordWatchers()
	return s.values.Watch(s.size(bufferSize))
}

// Events watches whole events.
func (s *Streams[T]) Events(bufferSize int) *watch.Watcher[Event[T]] {
	defer s.recordWatchers()
	return s.events.Watch(s.size(bufferSize))
}

func (s *Streams[T]) size(n int) int {
	if n > 0 {
		return n
	}
	return s.bufferSize
}

func (s *Streams[T]) recordWatchers() {
	s.metrics.Watchers("flat", s.flat.WatcherCount())
	s.metrics.Watchers("changes", s.changes.WatcherCount())
	s.metrics.Watchers("values", s.values.WatcherCount())
	s.metrics.Watchers("events", s.events.WatcherCount())
}
