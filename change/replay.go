package change

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/mutcoll/section"
)

var ErrReplay = errors.New("cannot replay change")

// ApplyFlat returns seq with c replayed on it. seq is not modified.
func ApplyFlat[E any](seq []E, c Flat[E]) ([]E, error) {
	var removes, inserts []Flat[E]
	for _, leaf := range c.Leaves() {
		if leaf.kind == KindRemove {
			removes = append(removes, leaf)
			continue
		}
		inserts = append(inserts, leaf)
	}
	slices.SortStableFunc(removes, func(a, b Flat[E]) int { return cmp.Compare(b.index, a.index) })
	slices.SortStableFunc(inserts, func(a, b Flat[E]) int { return cmp.Compare(a.index, b.index) })

	res := slices.Clone(seq)
	for _, r := range removes {
		if r.index < 0 || r.index >= len(res) {
			return nil, fmt.Errorf("%w: %s on length %d", ErrReplay, r, len(res))
		}
		res = slices.Delete(res, r.index, r.index+1)
	}
	for _, in := range inserts {
		if in.index < 0 || in.index > len(res) {
			return nil, fmt.Errorf("%w: %s on length %d", ErrReplay, in, len(res))
		}
		res = slices.Insert(res, in.index, in.element)
	}
	return res, nil
}

// ApplyDeep replays c on s in place. Inserted sections are cloned so s never
// shares storage with the change.
func ApplyDeep[T any](s *section.Section[T], c Deep[section.Slot[T]]) error {
	removes, inserts := deepBatch(c)
	for _, r := range removes {
		if _, err := s.Remove(r.path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrReplay, r, err)
		}
	}
	for _, in := range inserts {
		if err := s.Insert(in.element.Clone(), in.path); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrReplay, in, err)
		}
	}
	return nil
}

// deepBatch splits the leaves of c into removals, deepest and rightmost
// first, and insertions, leftmost first.
func deepBatch[E any](c Deep[E]) (removes, inserts []Deep[E]) {
	for _, leaf := range c.Leaves() {
		if leaf.kind == KindRemove {
			removes = append(removes, leaf)
			continue
		}
		inserts = append(inserts, leaf)
	}
	slices.SortStableFunc(removes, func(a, b Deep[E]) int { return b.path.Compare(a.path) })
	slices.SortStableFunc(inserts, func(a, b Deep[E]) int { return a.path.Compare(b.path) })
	return removes, inserts
}
