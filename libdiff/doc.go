// Package libdiff computes edit scripts between two versions of a sequence.
//
// # Usage
//
//	// Compute the changes turning from into to
//	cs := libdiff.Sequence(from, to)
//
//	// Wrap them as one batch and replay it
//	got, err := change.ApplyFlat(from, change.Composite(cs...))
//
// Sequence and SequenceFunc use the longest common subsequence table of the
// two inputs. The edit script is deterministic: when an insertion and a
// removal cost the same while walking the table back, the insertion wins.
// Removal indices refer to from and insertion indices refer to to, so a
// script is replayed as a batch (see package change).
//
// Lines is a human oriented line diff built on diffmatchpatch, meant for
// showing two rendered snapshots side by side. It does not follow the
// tie-break above and is never used to produce change events.
//
// # Related Packages
//
//   - github.com/signadot/mutcoll/change - change events and batch replay
//   - github.com/signadot/mutcoll/collection - the observable collection
package libdiff
