package collection

import (
	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/section"
)

// Event is what one mutation emits.
type Event[T any] struct {
	// Op names the mutating method, e.g. "insertAt" or "moveAtPath".
	Op string
	// Flat is the change of a mutation addressed by index, nil otherwise.
	Flat *change.Flat[section.Slot[T]]
	// Deep is the change of every mutation.
	Deep change.Deep[section.Slot[T]]
	// Value is the snapshot after the mutation.
	Value []section.Slot[T]
}

// Sink receives the events of a collection. Emit is called with the
// collection locked, in mutation order. Close is called once, when the
// collection is closed or collected.
type Sink[T any] interface {
	Emit(Event[T])
	Close()
}

// SinkFunc adapts a function to a Sink with a no-op Close.
type SinkFunc[T any] func(Event[T])

func (f SinkFunc[T]) Emit(ev Event[T]) { f(ev) }
func (f SinkFunc[T]) Close()           {}
