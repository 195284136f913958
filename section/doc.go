// Package section provides nested, index addressed sequences.
//
// # Overview
//
// A Section holds an ordered list of slots. A Slot is a tagged variant: it
// holds either a plain value of the element type or a nested *Section of the
// same element type.
//
//	inner := section.FromValues("t1", "t2")
//	root := section.New(section.Nest(inner), section.Value("t3"))
//
// # Paths
//
// Elements are addressed by a Path, a list of indices descending through
// nested sections. The last index addresses a position in the innermost
// section; every earlier index must address a nested section.
//
//	root.Get(section.Path{0, 1})       // "t2"
//	root.Insert(section.Value("t0"), section.Path{0, 0})
//	root.Remove(section.Path{1})       // "t3"
//
// Paths print in bracket form ("[0][1]") and can be rendered as JSON pointers
// ("/0/1") for patch export.
//
// # Dynamic access
//
// Callers that do not know statically whether a position holds a value or a
// section use As, GetAs, RemoveAs, SlotOf and InsertAny, which report
// ErrTypeMismatch and ErrElementTypeMismatch instead of panicking.
//
// # Thread Safety
//
// Sections are not safe for concurrent use. The collection package serializes
// access to the sections it owns.
package section
