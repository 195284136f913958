package section

import (
	"encoding/json"
	"fmt"
)

// Slot is one position of a Section: either a plain value or a nested
// section. The zero Slot holds the zero value of T.
type Slot[T any] struct {
	value T
	sub   *Section[T]
}

// Value wraps a plain value.
func Value[T any](v T) Slot[T] {
	return Slot[T]{value: v}
}

// Nest wraps a nested section. A nil section nests an empty one.
func Nest[T any](s *Section[T]) Slot[T] {
	if s == nil {
		s = New[T]()
	}
	return Slot[T]{sub: s}
}

// Values wraps each of vs with Value.
func Values[T any](vs ...T) []Slot[T] {
	res := make([]Slot[T], len(vs))
	for i, v := range vs {
		res[i] = Value(v)
	}
	return res
}

func (s Slot[T]) IsSection() bool {
	return s.sub != nil
}

// Value returns the plain value, false if the slot holds a section.
func (s Slot[T]) Value() (T, bool) {
	if s.sub != nil {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Section returns the nested section, false if the slot holds a value.
func (s Slot[T]) Section() (*Section[T], bool) {
	return s.sub, s.sub != nil
}

// Any returns the value as T or the nested *Section[T].
func (s Slot[T]) Any() any {
	if s.sub != nil {
		return s.sub
	}
	return s.value
}

// Clone deep copies nested sections; plain values are copied as is.
func (s Slot[T]) Clone() Slot[T] {
	if s.sub == nil {
		return s
	}
	return Slot[T]{sub: s.sub.Clone()}
}

// Plain returns the value, or for a section a []any tree of plain values.
func (s Slot[T]) Plain() any {
	if s.sub != nil {
		return s.sub.Plain()
	}
	return s.value
}

func (s Slot[T]) String() string {
	if s.sub != nil {
		return fmt.Sprintf("%v", s.sub.Plain())
	}
	return fmt.Sprintf("%v", s.value)
}

func (s Slot[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Plain())
}

// Equal compares slots structurally: values with ==, sections element by
// element. A value never equals a section.
func Equal[T comparable](a, b Slot[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is Equal with eq comparing plain values.
func EqualFunc[T any](a, b Slot[T], eq func(x, y T) bool) bool {
	switch {
	case a.sub == nil && b.sub == nil:
		return eq(a.value, b.value)
	case a.sub == nil || b.sub == nil:
		return false
	case a.sub == b.sub:
		return true
	}
	if len(a.sub.items) != len(b.sub.items) {
		return false
	}
	for i := range a.sub.items {
		if !EqualFunc(a.sub.items[i], b.sub.items[i], eq) {
			return false
		}
	}
	return true
}
