package section

import "errors"

var (
	ErrEmptyPath           = errors.New("empty path")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrNotASection         = errors.New("not a section")
	ErrElementTypeMismatch = errors.New("element type mismatch")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrBadPath             = errors.New("bad path")
)
