package collection

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/mutcoll/change"
	"github.com/signadot/mutcoll/section"
)

func TestDeepOperations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Collection[string]) (section.Slot[string], error)
		wantDeep  string
		wantValue []any
		wantSlot  any
	}{
		{
			name: "moveAtPath",
			mutate: func(c *Collection[string]) (section.Slot[string], error) {
				return c.MoveAtPath(section.Path{0, 1}, section.Path{0, 2})
			},
			wantDeep:  "composite[remove([0][1], t2) insert([0][2], t2)]",
			wantValue: []any{[]any{"t1", "t3", "t2", "t4"}},
			wantSlot:  "t2",
		},
		{
			name: "moveAtPath out of a section",
			mutate: func(c *Collection[string]) (section.Slot[string], error) {
				return c.MoveAtPath(section.Path{0, 3}, section.Path{0})
			},
			wantDeep:  "composite[remove([0][3], t4) insert([0], t4)]",
			wantValue: []any{"t4", []any{"t1", "t2", "t3"}},
			wantSlot:  "t4",
		},
		{
			name: "insertAtPath",
			mutate: func(c *Collection[string]) (section.Slot[string], error) {
				return section.Slot[string]{}, c.InsertAtPath(section.Value("x"), section.Path{0, 4})
			},
			wantDeep:  "insert([0][4], x)",
			wantValue: []any{[]any{"t1", "t2", "t3", "t4", "x"}},
			wantSlot:  "",
		},
		{
			name: "insertAtPath section",
			mutate: func(c *Collection[string]) (section.Slot[string], error) {
				return section.Slot[string]{}, c.InsertAtPath(section.Nest(section.FromValues("n")), section.Path{1})
			},
			wantDeep:  "insert([1], [n])",
			wantValue: []any{[]any{"t1", "t2", "t3", "t4"}, []any{"n"}},
			wantSlot:  "",
		},
		{
			name: "insertAnyAtPath",
			mutate: func(c *Collection[string]) (section.Slot[string], error) {
				return section.Slot[string]{}, c.InsertAnyAtPath("x", section.Path{0, 0})
			},
			wantDeep:  "insert([0][0], x)",
			wantValue: []any{[]any{"x", "t1", "t2", "t3", "t4"}},
			wantSlot:  "",
		},
		{
			name: "removeAtPath",
			mutate: func(c *Collection[string]) (section.Slot[string], error) {
				return c.RemoveAtPath(section.Path{0, 0})
			},
			wantDeep:  "remove([0][0], t1)",
			wantValue: []any{[]any{"t2", "t3", "t4"}},
			wantSlot:  "t1",
		},
		{
			name: "replaceAtPath",
			mutate: func(c *Collection[string]) (section.Slot[string], error) {
				return c.ReplaceAtPath(section.Value("r"), section.Path{0, 1})
			},
			wantDeep:  "composite[remove([0][1], t2) insert([0][1], r)]",
			wantValue: []any{[]any{"t1", "r", "t3", "t4"}},
			wantSlot:  "t2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newRecorded(t, nested())
			sl, err := tt.mutate(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantSlot, sl.Plain()); diff != "" {
				t.Errorf("returned slot mismatch (-want +got):\n%s", diff)
			}
			evs := rec.all()
			if len(evs) != 1 {
				t.Fatalf("expected 1 event, got %d", len(evs))
			}
			ev := evs[0]
			if ev.Flat != nil {
				t.Errorf("deep operation emitted a flat change %s", ev.Flat)
			}
			if got := ev.Deep.String(); got != tt.wantDeep {
				t.Errorf("expected %s, got %s", tt.wantDeep, got)
			}
			if diff := cmp.Diff(tt.wantValue, c.Plain()); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}

			// the deep change replays the old value into the new one
			replayed := nested()
			if err := change.ApplyDeep(replayed, ev.Deep); err != nil {
				t.Fatalf("replay: %v", err)
			}
			if diff := cmp.Diff(tt.wantValue, replayed.Plain()); diff != "" {
				t.Errorf("replay mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertRemoveAtPath_RoundTrip(t *testing.T) {
	paths := []section.Path{{0}, {1}, {0, 0}, {0, 2}, {0, 4}}
	for _, p := range paths {
		t.Run(p.String(), func(t *testing.T) {
			c, _ := newRecorded(t, nested())
			before := c.Plain()
			if err := c.InsertAtPath(section.Value("x"), p); err != nil {
				t.Fatalf("insert: %v", err)
			}
			got, err := c.RemoveAtPath(p)
			if err != nil {
				t.Fatalf("remove: %v", err)
			}
			if v, _ := got.Value(); v != "x" {
				t.Errorf("expected x back, got %s", got)
			}
			if diff := cmp.Diff(before, c.Plain()); diff != "" {
				t.Errorf("structure not restored (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeepOperations_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Collection[string]) error
		wantErr error
	}{
		{
			name:    "insert empty path",
			mutate:  func(c *Collection[string]) error { return c.InsertAtPath(section.Value("x"), nil) },
			wantErr: section.ErrEmptyPath,
		},
		{
			name:    "insertAny empty path before type check",
			mutate:  func(c *Collection[string]) error { return c.InsertAnyAtPath(42, section.Path{}) },
			wantErr: section.ErrEmptyPath,
		},
		{
			name:    "insertAny type mismatch",
			mutate:  func(c *Collection[string]) error { return c.InsertAnyAtPath(42, section.Path{0}) },
			wantErr: section.ErrElementTypeMismatch,
		},
		{
			name: "remove empty path",
			mutate: func(c *Collection[string]) error {
				_, err := c.RemoveAtPath(section.Path{})
				return err
			},
			wantErr: section.ErrEmptyPath,
		},
		{
			name: "replace empty path",
			mutate: func(c *Collection[string]) error {
				_, err := c.ReplaceAtPath(section.Value("x"), nil)
				return err
			},
			wantErr: section.ErrEmptyPath,
		},
		{
			name: "move empty target",
			mutate: func(c *Collection[string]) error {
				_, err := c.MoveAtPath(section.Path{0, 0}, nil)
				return err
			},
			wantErr: section.ErrEmptyPath,
		},
		{
			name:    "insert through a value",
			mutate:  func(c *Collection[string]) error { return c.InsertAtPath(section.Value("x"), section.Path{0, 0, 0}) },
			wantErr: section.ErrNotASection,
		},
		{
			name:    "insert past end",
			mutate:  func(c *Collection[string]) error { return c.InsertAtPath(section.Value("x"), section.Path{0, 5}) },
			wantErr: section.ErrIndexOutOfRange,
		},
		{
			name: "remove intermediate out of range",
			mutate: func(c *Collection[string]) error {
				_, err := c.RemoveAtPath(section.Path{3, 0})
				return err
			},
			wantErr: section.ErrIndexOutOfRange,
		},
		{
			name: "replace at length",
			mutate: func(c *Collection[string]) error {
				_, err := c.ReplaceAtPath(section.Value("x"), section.Path{0, 4})
				return err
			},
			wantErr: section.ErrIndexOutOfRange,
		},
		{
			name: "replace through a value",
			mutate: func(c *Collection[string]) error {
				_, err := c.ReplaceAtPath(section.Value("x"), section.Path{0, 0, 0})
				return err
			},
			wantErr: section.ErrNotASection,
		},
		{
			name: "move to bad target rolls back",
			mutate: func(c *Collection[string]) error {
				_, err := c.MoveAtPath(section.Path{0, 1}, section.Path{0, 9})
				return err
			},
			wantErr: section.ErrIndexOutOfRange,
		},
		{
			name: "move source through a value",
			mutate: func(c *Collection[string]) error {
				_, err := c.MoveAtPath(section.Path{0, 1, 0}, section.Path{0})
				return err
			},
			wantErr: section.ErrNotASection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newRecorded(t, nested())
			before := c.Plain()
			err := tt.mutate(c)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if n := len(rec.all()); n != 0 {
				t.Errorf("rejected mutation emitted %d events", n)
			}
			if diff := cmp.Diff(before, c.Plain()); diff != "" {
				t.Errorf("rejected mutation changed value (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeepOperations_AnyElements(t *testing.T) {
	rec := &recorder[any]{}
	c, err := New(section.New[any](section.Nest(section.FromValues[any](1, "two"))), quietSpec(), WithSink[any](rec))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if err := c.InsertAnyAtPath(nil, section.Path{0, 0}); err != nil {
		t.Fatalf("nil into section of any: %v", err)
	}
	if err := c.InsertAnyAtPath(section.FromValues[any](3.5), section.Path{1}); err != nil {
		t.Fatalf("section into section of any: %v", err)
	}
	want := []any{[]any{nil, 1, "two"}, []any{3.5}}
	if diff := cmp.Diff(want, c.Plain()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	n, err := ElementAt[int](c, section.Path{0, 1})
	if err != nil || n != 1 {
		t.Errorf("expected 1, got %d %v", n, err)
	}
}
