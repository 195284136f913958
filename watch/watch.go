// Package watch fans values out to watchers over buffered channels.
//
// A Hub delivers every broadcast value to each registered Watcher in
// broadcast order. A watcher that does not drain its Events channel within
// the hub's broadcast timeout is failed: its Failed channel is closed, its
// Events channel is closed and it is dropped from the hub. Slow consumers
// learn they missed values instead of missing them silently.
//
// Closing a hub completes every watcher by closing its Events channel.
package watch

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultBroadcastTimeout is the default time a watcher has to accept a
// value before it is failed.
const DefaultBroadcastTimeout = 5 * time.Second

// DefaultBufferSize is used by Watch for a non-positive buffer size.
const DefaultBufferSize = 64

// Hub manages watchers and broadcasts values to them. It is safe for
// concurrent use.
type Hub[E any] struct {
	mu               sync.RWMutex
	watchers         map[*Watcher[E]]struct{}
	broadcastTimeout time.Duration
	replay           bool
	latest           E
	hasLatest        bool
	closed           bool
	name             string
	log              *slog.Logger

	// bmu orders concurrent broadcasts.
	bmu sync.Mutex
}

type Option func(*options)

type options struct {
	timeout time.Duration
	replay  bool
	seed    any
	hasSeed bool
	name    string
	log     *slog.Logger
}

// WithTimeout sets the broadcast timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithReplay makes the hub remember the latest broadcast value and hand it
// to every new watcher first.
func WithReplay() Option {
	return func(o *options) { o.replay = true }
}

// WithSeed sets the value replayed before anything is broadcast. It implies
// WithReplay. v must have the hub's element type.
func WithSeed(v any) Option {
	return func(o *options) {
		o.replay = true
		o.seed = v
		o.hasSeed = true
	}
}

// WithName names the hub in log records.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

func NewHub[E any](opts ...Option) *Hub[E] {
	o := &options{timeout: DefaultBroadcastTimeout}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	h := &Hub[E]{
		watchers:         make(map[*Watcher[E]]struct{}),
		broadcastTimeout: o.timeout,
		replay:           o.replay,
		name:             o.name,
		log:              o.log.With("component", "watch", "hub", o.name),
	}
	if o.hasSeed {
		if v, ok := o.seed.(E); ok {
			h.latest = v
			h.hasLatest = true
		}
	}
	return h
}

// Watch registers a watcher with an Events buffer of bufferSize. On a
// replaying hub the latest value, if any, is already buffered. Watching a
// closed hub yields a completed watcher.
func (h *Hub[E]) Watch(bufferSize int) *Watcher[E] {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	w := newWatcher(h, bufferSize)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.replay && h.hasLatest {
		w.Events <- h.latest
	}
	if h.closed {
		w.end()
		return w
	}
	h.watchers[w] = struct{}{}
	return w
}

// Broadcast sends v to every watcher, waiting at most the broadcast timeout
// for each. It returns the number of watchers failed by this call.
// Broadcasting on a closed hub does nothing.
func (h *Hub[E]) Broadcast(v E) int {
	h.bmu.Lock()
	defer h.bmu.Unlock()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0
	}
	if h.replay {
		h.latest = v
		h.hasLatest = true
	}
	targets := make([]*Watcher[E], 0, len(h.watchers))
	for w := range h.watchers {
		targets = append(targets, w)
	}
	h.mu.Unlock()

	var failed []*Watcher[E]
	for _, w := range targets {
		if !w.send(v, h.broadcastTimeout) {
			failed = append(failed, w)
		}
	}
	if len(failed) == 0 {
		return 0
	}
	h.mu.Lock()
	for _, w := range failed {
		delete(h.watchers, w)
	}
	h.mu.Unlock()
	for _, w := range failed {
		w.end()
	}
	h.log.Warn("watcher failed", "count", len(failed), "timeout", h.broadcastTimeout)
	return len(failed)
}

// Latest returns the value a new watcher would receive first.
func (h *Hub[E]) Latest() (E, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.hasLatest
}

// Close completes every watcher. It is safe to call more than once.
func (h *Hub[E]) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	ws := h.watchers
	h.watchers = make(map[*Watcher[E]]struct{})
	h.mu.Unlock()
	for w := range ws {
		w.end()
	}
}

func (h *Hub[E]) Closed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

// WatcherCount returns the number of active watchers.
func (h *Hub[E]) WatcherCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

func (h *Hub[E]) unwatch(w *Watcher[E]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers, w)
}
