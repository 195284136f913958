package collection

import (
	"fmt"

	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/libdiff"
	"github.com/signadot/mutcoll/section"
)

// Set replaces the whole value with a copy of seq. The emitted change is
// the edit script from the old value to seq, as one Composite.
func (c *Collection[T]) Set(seq []section.Slot[T]) error {
	const op = "set"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return err
	}
	script := libdiff.SequenceFunc(c.root.Items(), cloneSlots(seq), c.equal)
	c.root.Reset(cloneSlots(seq))
	c.metrics.DiffSize(len(script))
	c.emitFlat(op, change.Composite(script...))
	return nil
}

// SetValues replaces the whole value with plain values.
func (c *Collection[T]) SetValues(vs ...T) error {
	return c.Set(section.Values(vs...))
}

// InsertAt inserts el at index. index may equal Len.
func (c *Collection[T]) InsertAt(el section.Slot[T], index int) error {
	const op = "insertAt"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return err
	}
	if err := c.root.InsertAt(index, el.Clone()); err != nil {
		return c.reject(op, err)
	}
	c.emitFlat(op, change.Insert(index, el.Clone()))
	return nil
}

func (c *Collection[T]) RemoveAt(index int) (section.Slot[T], error) {
	const op = "removeAt"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return section.Slot[T]{}, err
	}
	el, err := c.root.RemoveAt(index)
	if err != nil {
		return el, c.reject(op, err)
	}
	c.emitFlat(op, change.Remove(index, el.Clone()))
	return el, nil
}

// RemoveFirst removes the first slot. On an empty collection it does
// nothing, emits nothing and returns false.
func (c *Collection[T]) RemoveFirst() (section.Slot[T], bool, error) {
	return c.removeEnd("removeFirst", func(int) int { return 0 })
}

// RemoveLast removes the last slot. On an empty collection it does nothing,
// emits nothing and returns false.
func (c *Collection[T]) RemoveLast() (section.Slot[T], bool, error) {
	return c.removeEnd("removeLast", func(n int) int { return n - 1 })
}

func (c *Collection[T]) removeEnd(op string, index func(n int) int) (section.Slot[T], bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return section.Slot[T]{}, false, err
	}
	n := c.root.Len()
	if n == 0 {
		return section.Slot[T]{}, false, nil
	}
	i := index(n)
	el, err := c.root.RemoveAt(i)
	if err != nil {
		return el, false, c.reject(op, err)
	}
	c.emitFlat(op, change.Remove(i, el.Clone()))
	return el, true, nil
}

// RemoveAll empties the collection. The change removes every slot, in
// order, as one Composite.
func (c *Collection[T]) RemoveAll() ([]section.Slot[T], error) {
	const op = "removeAll"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return nil, err
	}
	removed := c.root.Clear()
	cs := make([]change.Flat[section.Slot[T]], len(removed))
	for i, el := range removed {
		cs[i] = change.Remove(i, el.Clone())
	}
	c.emitFlat(op, change.Composite(cs...))
	return removed, nil
}

func (c *Collection[T]) Append(el section.Slot[T]) error {
	const op = "append"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return err
	}
	n := c.root.Len()
	c.root.Append(el.Clone())
	c.emitFlat(op, change.Insert(n, el.Clone()))
	return nil
}

// AppendAll appends els as one Composite of insertions.
func (c *Collection[T]) AppendAll(els ...section.Slot[T]) error {
	const op = "appendAll"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return err
	}
	n := c.root.Len()
	c.root.Append(cloneSlots(els)...)
	cs := make([]change.Flat[section.Slot[T]], len(els))
	for i, el := range els {
		cs[i] = change.Insert(n+i, el.Clone())
	}
	c.emitFlat(op, change.Composite(cs...))
	return nil
}

// ReplaceRange replaces the slots starting at start one for one with els.
// The range [start, end) must lie within the collection and so must
// start+len(els). The change holds all removals, then all insertions, each
// in index order.
func (c *Collection[T]) ReplaceRange(start, end int, els []section.Slot[T]) error {
	const op = "replaceRange"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return err
	}
	n := c.root.Len()
	if start < 0 || start > end || end > n || start+len(els) > n {
		return c.reject(op, fmt.Errorf("%w: replace [%d, %d) with %d elements (len %d)",
			section.ErrIndexOutOfRange, start, end, len(els), n))
	}
	removes := make([]change.Flat[section.Slot[T]], 0, 2*len(els))
	var inserts []change.Flat[section.Slot[T]]
	for k, el := range els {
		i := start + k
		old, err := c.root.RemoveAt(i)
		if err != nil {
			return c.reject(op, err)
		}
		if err := c.root.InsertAt(i, el.Clone()); err != nil {
			return c.reject(op, err)
		}
		removes = append(removes, change.Remove(i, old))
		inserts = append(inserts, change.Insert(i, el.Clone()))
	}
	c.emitFlat(op, change.Composite(append(removes, inserts...)...))
	return nil
}

// Move moves the slot at from so that it ends up at to.
func (c *Collection[T]) Move(from, to int) (section.Slot[T], error) {
	const op = "move"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return section.Slot[T]{}, err
	}
	n := c.root.Len()
	if from < 0 || from >= n || to < 0 || to >= n {
		return section.Slot[T]{}, c.reject(op, fmt.Errorf("%w: move %d to %d (len %d)",
			section.ErrIndexOutOfRange, from, to, n))
	}
	el, err := c.root.RemoveAt(from)
	if err != nil {
		return el, c.reject(op, err)
	}
	if err := c.root.InsertAt(to, el); err != nil {
		return el, c.reject(op, err)
	}
	c.emitFlat(op, change.Composite(
		change.Remove(from, el.Clone()),
		change.Insert(to, el.Clone()),
	))
	return el.Clone(), nil
}

func (c *Collection[T]) equal(a, b section.Slot[T]) bool {
	return section.EqualFunc(a, b, c.eq)
}

func cloneSlots[T any](els []section.Slot[T]) []section.Slot[T] {
	res := make([]section.Slot[T], len(els))
	for i, el := range els {
		res[i] = el.Clone()
	}
	return res
}
