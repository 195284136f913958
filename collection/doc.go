// Package collection provides an observable, mutable collection of nested
// sections.
//
// A Collection owns one root section. Every mutation is applied under the
// collection's lock and emits exactly one Event to its Sink, describing the
// change and carrying a snapshot of the new value:
//
//	c := collection.FromValues[string](nil, "t0", "t1")
//	changes := c.Streams().Changes(16)
//	_ = c.Append(section.Value("t2"))
//	ch := <-changes.Events // insert([2], t2)
//
// # Streams
//
// The default sink, Streams, fans events out over four watch hubs:
//
//   - flat changes, for mutations addressed by a single index
//   - changes, for every mutation; flat changes are promoted with Flat.Deep
//   - values, the snapshot after every mutation; new watchers first receive
//     the latest snapshot
//   - events, the whole Event
//
// For one mutation the flat change is delivered before the deep change,
// which is delivered before the snapshot. Events of one collection are
// delivered in mutation order.
//
// Close completes every stream. A collection that becomes unreachable
// without being closed has its streams completed by a cleanup.
//
// # Errors
//
// Path operations reject an empty path with section.ErrEmptyPath before
// looking at the tree. A rejected mutation changes nothing and emits
// nothing. After Close, mutations fail with ErrClosed.
//
// # Ownership
//
// A collection copies the sections handed to it and hands out copies. Event
// snapshots are shared by every watcher of a stream and must not be
// modified.
package collection
