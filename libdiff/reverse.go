package libdiff

import "github.com/signadot/mutcoll/change"

// Reverse returns the change undoing c: every removal becomes an insertion
// of the same element at the same index and vice versa. Because removals of a
// batch refer to the state before it and insertions to the state after it,
// the reverse of a batch from a to b is a batch from b to a.
func Reverse[E any](c change.Flat[E]) change.Flat[E] {
	switch c.Kind() {
	case change.KindRemove:
		i, _ := c.Index()
		el, _ := c.Element()
		return change.Insert(i, el)
	case change.KindInsert:
		i, _ := c.Index()
		el, _ := c.Element()
		return change.Remove(i, el)
	}
	subs := c.Changes()
	res := make([]change.Flat[E], len(subs))
	for i, sub := range subs {
		res[i] = Reverse(sub)
	}
	return change.Composite(res...)
}
