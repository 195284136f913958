package watch

import (
	"sync"
	"time"
)

// Watcher receives the values broadcast by a Hub on Events. Events is
// closed when the hub closes, when the watcher is stopped and when the
// watcher fails; in the last case Failed is closed first.
type Watcher[E any] struct {
	Events chan E
	Failed chan struct{}

	hub      *Hub[E]
	stop     chan struct{}
	failOnce sync.Once
	endOnce  sync.Once

	// sendMu is held while sending on Events and while closing it.
	sendMu sync.Mutex
	ended  bool
}

func newWatcher[E any](h *Hub[E], bufferSize int) *Watcher[E] {
	return &Watcher[E]{
		Events: make(chan E, bufferSize),
		Failed: make(chan struct{}),
		hub:    h,
		stop:   make(chan struct{}),
	}
}

// Stop unregisters w and closes Events. Values still buffered remain
// readable.
func (w *Watcher[E]) Stop() {
	w.hub.unwatch(w)
	w.end()
}

// IsFailed returns true if the watcher was dropped as a slow consumer.
func (w *Watcher[E]) IsFailed() bool {
	select {
	case <-w.Failed:
		return true
	default:
		return false
	}
}

// Done is closed once w will receive no more values.
func (w *Watcher[E]) Done() <-chan struct{} {
	return w.stop
}

func (w *Watcher[E]) send(v E, timeout time.Duration) bool {
	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	if w.ended {
		return true
	}
	select {
	case w.Events <- v:
		return true
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case w.Events <- v:
		return true
	case <-w.stop:
		return true
	case <-timer.C:
		w.failOnce.Do(func() {
			close(w.Failed)
		})
		return false
	}
}

func (w *Watcher[E]) end() {
	w.endOnce.Do(func() {
		close(w.stop)
		w.sendMu.Lock()
		w.ended = true
		close(w.Events)
		w.sendMu.Unlock()
	})
}
