package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op classifies a LineDiff.
type Op int

const (
	Equal Op = iota
	Delete
	Add
)

func (o Op) String() string {
	switch o {
	case Delete:
		return "-"
	case Add:
		return "+"
	default:
		return " "
	}
}

// LineDiff is a run of lines that are kept, deleted or added.
type LineDiff struct {
	Op    Op
	Lines []string
}

// Lines diffs two texts line by line.
func Lines(from, to string) []LineDiff {
	dmp := diffpatch.New()
	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffMainRunes(fromRunes, toRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	res := make([]LineDiff, 0, len(diffs))
	for _, d := range diffs {
		ld := LineDiff{Lines: splitLines(d.Text)}
		switch d.Type {
		case diffpatch.DiffDelete:
			ld.Op = Delete
		case diffpatch.DiffInsert:
			ld.Op = Add
		default:
			ld.Op = Equal
		}
		res = append(res, ld)
	}
	return res
}

// Changed reports whether any run is an addition or deletion.
func Changed(ds []LineDiff) bool {
	for _, d := range ds {
		if d.Op != Equal {
			return true
		}
	}
	return false
}

// FormatLines renders ds in unified style, each line prefixed with its op.
// colorize, when non-nil, is applied to whole rendered lines.
func FormatLines(ds []LineDiff, colorize func(Op, string) string) string {
	var sb strings.Builder
	for _, d := range ds {
		for _, line := range d.Lines {
			l := d.Op.String() + " " + line
			if colorize != nil {
				l = colorize(d.Op, l)
			}
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
