package collection

import (
	"errors"

	"github.com/signadot/mutcoll/section"
)

var ErrClosed = errors.New("collection closed")

// errKind names err for metrics labels.
func errKind(err error) string {
	switch {
	case errors.Is(err, ErrClosed):
		return "closed"
	case errors.Is(err, section.ErrEmptyPath):
		return "empty_path"
	case errors.Is(err, section.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, section.ErrNotASection):
		return "not_a_section"
	case errors.Is(err, section.ErrElementTypeMismatch):
		return "element_type_mismatch"
	case errors.Is(err, section.ErrTypeMismatch):
		return "type_mismatch"
	default:
		return "other"
	}
}
