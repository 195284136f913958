package section

import (
	"fmt"

	"github.com/signadot/mutcoll/debug"
)

// Section is an ordered list of slots. A section exclusively owns the
// sections nested in it.
type Section[T any] struct {
	items []Slot[T]
}

// New returns a section holding a copy of items.
func New[T any](items ...Slot[T]) *Section[T] {
	res := &Section[T]{items: make([]Slot[T], len(items))}
	copy(res.items, items)
	return res
}

// FromValues returns a flat section of plain values.
func FromValues[T any](vs ...T) *Section[T] {
	return &Section[T]{items: Values(vs...)}
}

func (s *Section[T]) Len() int {
	return len(s.items)
}

// At returns the slot at i. It panics if i is out of range, like a slice
// index expression.
func (s *Section[T]) At(i int) Slot[T] {
	return s.items[i]
}

// Items returns a shallow copy of the slots.
func (s *Section[T]) Items() []Slot[T] {
	res := make([]Slot[T], len(s.items))
	copy(res, s.items)
	return res
}

// Clone returns a deep copy of s.
func (s *Section[T]) Clone() *Section[T] {
	res := &Section[T]{items: make([]Slot[T], len(s.items))}
	for i, it := range s.items {
		res.items[i] = it.Clone()
	}
	return res
}

// Plain returns s as a tree of []any holding plain values.
func (s *Section[T]) Plain() []any {
	res := make([]any, len(s.items))
	for i, it := range s.items {
		res[i] = it.Plain()
	}
	return res
}

// InsertAt inserts el at i, shifting later slots right. i may equal Len.
func (s *Section[T]) InsertAt(i int, el Slot[T]) error {
	if i < 0 || i > len(s.items) {
		return fmt.Errorf("%w: insert at %d (len %d)", ErrIndexOutOfRange, i, len(s.items))
	}
	s.items = append(s.items, Slot[T]{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = el
	return nil
}

// RemoveAt removes and returns the slot at i, shifting later slots left.
func (s *Section[T]) RemoveAt(i int) (Slot[T], error) {
	if i < 0 || i >= len(s.items) {
		return Slot[T]{}, fmt.Errorf("%w: remove at %d (len %d)", ErrIndexOutOfRange, i, len(s.items))
	}
	res := s.items[i]
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = Slot[T]{}
	s.items = s.items[:len(s.items)-1]
	return res, nil
}

func (s *Section[T]) Append(els ...Slot[T]) {
	s.items = append(s.items, els...)
}

// Reset replaces every slot with a copy of items.
func (s *Section[T]) Reset(items []Slot[T]) {
	s.items = make([]Slot[T], len(items))
	copy(s.items, items)
}

// Clear empties s and returns the slots it held.
func (s *Section[T]) Clear() []Slot[T] {
	res := s.items
	s.items = nil
	return res
}

// Get returns the slot at p.
func (s *Section[T]) Get(p Path) (Slot[T], error) {
	parent, err := s.walk("get", p)
	if err != nil {
		return Slot[T]{}, err
	}
	i := p.Last()
	if i < 0 || i >= len(parent.items) {
		return Slot[T]{}, fmt.Errorf("%w: get %s (len %d)", ErrIndexOutOfRange, p, len(parent.items))
	}
	return parent.items[i], nil
}

// Insert inserts el at p. The terminal index may equal the length of the
// addressed section, which appends.
func (s *Section[T]) Insert(el Slot[T], p Path) error {
	parent, err := s.walk("insert", p)
	if err != nil {
		return err
	}
	if err := parent.InsertAt(p.Last(), el); err != nil {
		return fmt.Errorf("insert %s: %w", p, err)
	}
	return nil
}

// Remove removes and returns the slot at p.
func (s *Section[T]) Remove(p Path) (Slot[T], error) {
	parent, err := s.walk("remove", p)
	if err != nil {
		return Slot[T]{}, err
	}
	res, err := parent.RemoveAt(p.Last())
	if err != nil {
		return Slot[T]{}, fmt.Errorf("remove %s: %w", p, err)
	}
	return res, nil
}

// walk descends through all components of p but the last and returns the
// section holding the terminal position. It never mutates.
func (s *Section[T]) walk(op string, p Path) (*Section[T], error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPath, op)
	}
	cur := s
	for depth, i := range p[:len(p)-1] {
		if i < 0 || i >= len(cur.items) {
			return nil, fmt.Errorf("%w: %s %s: index %d at depth %d (len %d)",
				ErrIndexOutOfRange, op, p, i, depth, len(cur.items))
		}
		sub := cur.items[i].sub
		if sub == nil {
			return nil, fmt.Errorf("%w: %s %s: %s holds a value", ErrNotASection, op, p, p[:depth+1])
		}
		cur = sub
	}
	if debug.Path() {
		debug.Logf("section %s %s: parent len %d\n", op, p, len(cur.items))
	}
	return cur, nil
}
