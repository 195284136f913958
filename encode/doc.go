// Package encode renders collection changes and snapshots as text.
//
// Change writes one line per leaf change, the operation sign first:
//
//	- [0][1] t2
//	+ [0][2] t2
//
// Elements are written in YAML flow style, or as JSON with
// EncodeFormat(JSONFormat). With EncodeColors the sign, the path and the
// element are colored with fatih/color.
//
// Snapshot writes a plain tree (see section.Section.Plain) as a YAML block
// document or as indented JSON.
package encode
