// Package change defines the change events emitted by observable
// collections.
//
// A Flat change locates its element by an index in a single sequence; a Deep
// change locates it by a section.Path through nested sections. Both are one
// of Remove, Insert or Composite:
//
//	change.Remove(0, "t0")
//	change.Insert(1, "t2c")
//	change.Composite(change.Remove(0, "t0"), change.Insert(1, "t2c"))
//
// Every Flat change converts to its Deep equivalent with Flat.Deep, which
// wraps each index in a one element path.
//
// # Composite replay
//
// A Composite is a batch. The locations of its removals refer to the state
// before the batch and the locations of its insertions refer to the state
// after it. ApplyFlat and ApplyDeep replay a change this way: removals from
// the highest location down, then insertions from the lowest location up.
// JSONPatch renders the same order as an RFC 6902 document.
//
// # Filtering
//
// A Matcher compiles an expr-lang boolean expression evaluated against each
// leaf change, with the variables op, path, index, depth and element:
//
//	m, _ := change.NewMatcher(`op == "insert" && depth > 1`)
//	sub, ok, err := change.Filter(m, c)
package change
