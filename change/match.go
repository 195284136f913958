package change

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is what a Matcher expression sees for each leaf change.
type Env struct {
	Op      string `expr:"op"`
	Path    []int  `expr:"path"`
	Index   int    `expr:"index"`
	Depth   int    `expr:"depth"`
	Element any    `expr:"element"`
}

// Matcher is a compiled boolean expression over Env, for example
//
//	op == "insert" && depth > 1
//	element == "x" || index == 0
type Matcher struct {
	src string
	prg *vm.Program
}

func NewMatcher(src string) (*Matcher, error) {
	prg, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("could not compile matcher %q: %w", src, err)
	}
	return &Matcher{src: src, prg: prg}, nil
}

func (m *Matcher) String() string {
	return m.src
}

type plainer interface {
	Plain() any
}

func envOf[E any](c Deep[E]) Env {
	env := Env{
		Op:    c.kind.String(),
		Path:  []int(c.path.Clone()),
		Depth: c.path.Depth(),
	}
	if len(c.path) != 0 {
		env.Index = c.path.Last()
	}
	var el any = c.element
	if p, ok := el.(plainer); ok {
		el = p.Plain()
	}
	env.Element = el
	return env
}

// Match reports whether the leaf change c satisfies m. A Composite matches
// when any of its leaves does.
func Match[E any](m *Matcher, c Deep[E]) (bool, error) {
	for _, leaf := range c.Leaves() {
		res, err := expr.Run(m.prg, envOf(leaf))
		if err != nil {
			return false, fmt.Errorf("error evaluating %q on %s: %w", m.src, leaf, err)
		}
		if res.(bool) {
			return true, nil
		}
	}
	return false, nil
}

// Filter returns the leaves of c satisfying m. A matching leaf is returned
// as is; a Composite yields a Composite of its matching leaves. The boolean
// is false when nothing matched.
func Filter[E any](m *Matcher, c Deep[E]) (Deep[E], bool, error) {
	if c.kind != KindComposite {
		ok, err := Match(m, c)
		return c, ok, err
	}
	var kept []Deep[E]
	for _, leaf := range c.Leaves() {
		ok, err := Match(m, leaf)
		if err != nil {
			return Deep[E]{}, false, err
		}
		if ok {
			kept = append(kept, leaf)
		}
	}
	return DeepComposite(kept...), len(kept) != 0, nil
}
