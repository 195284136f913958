package change

import (
	"fmt"
	"strings"

	"github.com/signadot/mutcoll/section"
)

// Flat is a change to a single sequence, located by index.
type Flat[E any] struct {
	kind    Kind
	index   int
	element E
	changes []Flat[E]
}

func Remove[E any](index int, el E) Flat[E] {
	return Flat[E]{kind: KindRemove, index: index, element: el}
}

func Insert[E any](index int, el E) Flat[E] {
	return Flat[E]{kind: KindInsert, index: index, element: el}
}

// Composite groups changes in application order. The slice is copied.
func Composite[E any](cs ...Flat[E]) Flat[E] {
	res := Flat[E]{kind: KindComposite, changes: make([]Flat[E], len(cs))}
	copy(res.changes, cs)
	return res
}

func (c Flat[E]) Kind() Kind {
	return c.kind
}

// Index is the location of a Remove or Insert; false for a Composite.
func (c Flat[E]) Index() (int, bool) {
	if c.kind == KindComposite {
		return 0, false
	}
	return c.index, true
}

// Element is the removed or inserted element; false for a Composite.
func (c Flat[E]) Element() (E, bool) {
	if c.kind == KindComposite {
		var zero E
		return zero, false
	}
	return c.element, true
}

// Operation is Removal or Insertion; false for a Composite.
func (c Flat[E]) Operation() (Operation, bool) {
	return c.kind.operation()
}

// Changes returns the children of a Composite, nil otherwise.
func (c Flat[E]) Changes() []Flat[E] {
	return c.changes
}

// Leaves returns the non-composite changes of c in order.
func (c Flat[E]) Leaves() []Flat[E] {
	if c.kind != KindComposite {
		return []Flat[E]{c}
	}
	var res []Flat[E]
	for _, sub := range c.changes {
		res = append(res, sub.Leaves()...)
	}
	return res
}

// Deep converts c into the equivalent deep change, turning every index i
// into the path [i].
func (c Flat[E]) Deep() Deep[E] {
	switch c.kind {
	case KindRemove:
		return DeepRemove(section.Path{c.index}, c.element)
	case KindInsert:
		return DeepInsert(section.Path{c.index}, c.element)
	}
	res := Deep[E]{kind: KindComposite, changes: make([]Deep[E], len(c.changes))}
	for i, sub := range c.changes {
		res.changes[i] = sub.Deep()
	}
	return res
}

func (c Flat[E]) String() string {
	if c.kind != KindComposite {
		return fmt.Sprintf("%s(%d, %v)", c.kind, c.index, c.element)
	}
	parts := make([]string, len(c.changes))
	for i, sub := range c.changes {
		parts[i] = sub.String()
	}
	return "composite[" + strings.Join(parts, " ") + "]"
}
