package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	from := "- a\n- b\n- c\n"
	to := "- a\n- x\n- c\n"
	ds := Lines(from, to)
	if !Changed(ds) {
		t.Fatalf("expected a change")
	}
	got := FormatLines(ds, nil)
	want := "  - a\n- - b\n+ - x\n  - c\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLines_Unchanged(t *testing.T) {
	ds := Lines("a\nb\n", "a\nb\n")
	if Changed(ds) {
		t.Errorf("expected no change, got %v", ds)
	}
}

func TestFormatLines_Colorize(t *testing.T) {
	ds := []LineDiff{{Op: Add, Lines: []string{"x"}}}
	got := FormatLines(ds, func(op Op, s string) string { return "<" + s + ">" })
	if got != "<+ x>\n" {
		t.Errorf("unexpected %q", got)
	}
}
