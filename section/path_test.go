package section

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPath_Parse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		wantErr bool
	}{
		{name: "empty", input: "", want: Path{}},
		{name: "single", input: "[3]", want: Path{3}},
		{name: "nested", input: "[0][12][1]", want: Path{0, 12, 1}},
		{name: "pointer", input: "/0/12", want: Path{0, 12}},
		{name: "spaces", input: " [ 1 ][2] ", want: Path{1, 2}},
		{name: "negative", input: "[-1]", wantErr: true},
		{name: "unterminated", input: "[1][2", wantErr: true},
		{name: "garbage", input: "1.2", wantErr: true},
		{name: "field", input: "[a]", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrBadPath) {
					t.Fatalf("expected ErrBadPath, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPath_Format(t *testing.T) {
	p := Path{0, 2}
	if p.String() != "[0][2]" {
		t.Errorf("String: got %q", p.String())
	}
	if p.Pointer() != "/0/2" {
		t.Errorf("Pointer: got %q", p.Pointer())
	}
	back, err := ParsePath(p.String())
	if err != nil || back.Compare(p) != 0 {
		t.Errorf("round trip: got %v (%v)", back, err)
	}
}

func TestPath_Compare(t *testing.T) {
	tests := []struct {
		a, b Path
		want int
	}{
		{Path{0}, Path{0}, 0},
		{Path{0}, Path{1}, -1},
		{Path{0, 2}, Path{0, 1}, 1},
		{Path{0}, Path{0, 0}, -1},
		{Path{1}, Path{0, 5}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s vs %s: got %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
