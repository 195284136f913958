package change

import (
	"fmt"
	"strings"

	"github.com/signadot/mutcoll/section"
)

// Deep is a change located by a path through nested sections.
type Deep[E any] struct {
	kind    Kind
	path    section.Path
	element E
	changes []Deep[E]
}

func DeepRemove[E any](p section.Path, el E) Deep[E] {
	return Deep[E]{kind: KindRemove, path: p.Clone(), element: el}
}

func DeepInsert[E any](p section.Path, el E) Deep[E] {
	return Deep[E]{kind: KindInsert, path: p.Clone(), element: el}
}

func DeepComposite[E any](cs ...Deep[E]) Deep[E] {
	res := Deep[E]{kind: KindComposite, changes: make([]Deep[E], len(cs))}
	copy(res.changes, cs)
	return res
}

func (c Deep[E]) Kind() Kind {
	return c.kind
}

// Path is the location of a Remove or Insert; false for a Composite.
func (c Deep[E]) Path() (section.Path, bool) {
	if c.kind == KindComposite {
		return nil, false
	}
	return c.path.Clone(), true
}

func (c Deep[E]) Element() (E, bool) {
	if c.kind == KindComposite {
		var zero E
		return zero, false
	}
	return c.element, true
}

func (c Deep[E]) Operation() (Operation, bool) {
	return c.kind.operation()
}

func (c Deep[E]) Changes() []Deep[E] {
	return c.changes
}

func (c Deep[E]) Leaves() []Deep[E] {
	if c.kind != KindComposite {
		return []Deep[E]{c}
	}
	var res []Deep[E]
	for _, sub := range c.changes {
		res = append(res, sub.Leaves()...)
	}
	return res
}

func (c Deep[E]) String() string {
	if c.kind != KindComposite {
		return fmt.Sprintf("%s(%s, %v)", c.kind, c.path, c.element)
	}
	parts := make([]string, len(c.changes))
	for i, sub := range c.changes {
		parts[i] = sub.String()
	}
	return "composite[" + strings.Join(parts, " ") + "]"
}
