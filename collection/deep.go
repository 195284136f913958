package collection

import (
	"fmt"

	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/section"
)

// InsertAtPath inserts el at p. The last index of p may equal the length
// of the addressed section.
func (c *Collection[T]) InsertAtPath(el section.Slot[T], p section.Path) error {
	const op = "insertAtPath"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return err
	}
	return c.insertAtPath(op, el, p)
}

// InsertAnyAtPath inserts an element whose static type is unknown: a
// Slot[T], a *section.Section[T] or a T. Anything else fails with
// section.ErrElementTypeMismatch.
func (c *Collection[T]) InsertAnyAtPath(el any, p section.Path) error {
	const op = "insertAtPath"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return err
	}
	if len(p) == 0 {
		return c.reject(op, fmt.Errorf("%w: %s", section.ErrEmptyPath, op))
	}
	sl, err := section.SlotOf[T](el)
	if err != nil {
		return c.reject(op, fmt.Errorf("%s %s: %w", op, p, err))
	}
	return c.insertAtPath(op, sl, p)
}

func (c *Collection[T]) insertAtPath(op string, el section.Slot[T], p section.Path) error {
	if len(p) == 0 {
		return c.reject(op, fmt.Errorf("%w: %s", section.ErrEmptyPath, op))
	}
	if err := c.root.Insert(el.Clone(), p); err != nil {
		return c.reject(op, err)
	}
	c.emitDeep(op, change.DeepInsert(p, el.Clone()))
	return nil
}

// RemoveAtPath removes and returns the slot at p.
func (c *Collection[T]) RemoveAtPath(p section.Path) (section.Slot[T], error) {
	const op = "removeAtPath"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return section.Slot[T]{}, err
	}
	if len(p) == 0 {
		return section.Slot[T]{}, c.reject(op, fmt.Errorf("%w: %s", section.ErrEmptyPath, op))
	}
	el, err := c.root.Remove(p)
	if err != nil {
		return el, c.reject(op, err)
	}
	c.emitDeep(op, change.DeepRemove(p, el.Clone()))
	return el, nil
}

// ReplaceAtPath replaces the slot at p with el and returns the old slot.
// The change is a Composite of the removal and the insertion.
func (c *Collection[T]) ReplaceAtPath(el section.Slot[T], p section.Path) (section.Slot[T], error) {
	const op = "replaceAtPath"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return section.Slot[T]{}, err
	}
	if len(p) == 0 {
		return section.Slot[T]{}, c.reject(op, fmt.Errorf("%w: %s", section.ErrEmptyPath, op))
	}
	if _, err := c.root.Get(p); err != nil {
		return section.Slot[T]{}, c.reject(op, err)
	}
	old, err := c.root.Remove(p)
	if err != nil {
		return old, c.reject(op, err)
	}
	if err := c.root.Insert(el.Clone(), p); err != nil {
		if rerr := c.root.Insert(old, p); rerr != nil {
			c.log.Error("could not restore replaced slot", "path", p.String(), "error", rerr)
		}
		return section.Slot[T]{}, c.reject(op, err)
	}
	c.emitDeep(op, change.DeepComposite(
		change.DeepRemove(p, old.Clone()),
		change.DeepInsert(p, el.Clone()),
	))
	return old, nil
}

// MoveAtPath removes the slot at from and inserts it at to, where to is
// read after the removal. If the insertion fails the removal is undone.
func (c *Collection[T]) MoveAtPath(from, to section.Path) (section.Slot[T], error) {
	const op = "moveAtPath"
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(op); err != nil {
		return section.Slot[T]{}, err
	}
	if len(from) == 0 || len(to) == 0 {
		return section.Slot[T]{}, c.reject(op, fmt.Errorf("%w: %s", section.ErrEmptyPath, op))
	}
	el, err := c.root.Remove(from)
	if err != nil {
		return el, c.reject(op, err)
	}
	if err := c.root.Insert(el, to); err != nil {
		if rerr := c.root.Insert(el, from); rerr != nil {
			c.log.Error("could not restore moved slot", "from", from.String(), "error", rerr)
		}
		return section.Slot[T]{}, c.reject(op, err)
	}
	c.emitDeep(op, change.DeepComposite(
		change.DeepRemove(from, el.Clone()),
		change.DeepInsert(to, el.Clone()),
	))
	return el.Clone(), nil
}
