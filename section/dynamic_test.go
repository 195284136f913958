package section

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestAs(t *testing.T) {
	s := nested()

	v, err := GetAs[string](s, Path{0, 1})
	if err != nil || v != "t2" {
		t.Errorf("expected t2, got %q (%v)", v, err)
	}
	sub, err := GetAs[*Section[string]](s, Path{0})
	if err != nil {
		t.Fatalf("expected section, got %v", err)
	}
	if sub.Len() != 4 {
		t.Errorf("expected 4 items, got %d", sub.Len())
	}
	sl, err := GetAs[Slot[string]](s, Path{1})
	if err != nil || sl.IsSection() {
		t.Errorf("expected value slot, got %v (%v)", sl, err)
	}
	if _, err := GetAs[int](s, Path{1}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
	if _, err := GetAs[string](s, Path{0}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch for section viewed as string, got %v", err)
	}
	if _, err := GetAs[string](s, Path{1, 0}); !errors.Is(err, ErrNotASection) {
		t.Errorf("expected ErrNotASection, got %v", err)
	}
}

func TestAs_Interfaces(t *testing.T) {
	s := New(Value[any](1), Value[any]("two"), Value[any](nil))
	n, err := GetAs[int](s, Path{0})
	if err != nil || n != 1 {
		t.Errorf("expected 1, got %d (%v)", n, err)
	}
	if _, err := GetAs[int](s, Path{1}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
	str, err := GetAs[fmtStringer](New(Value[any](named("x"))), Path{0})
	if err != nil || str.String() != "x" {
		t.Errorf("expected stringer x, got %v (%v)", str, err)
	}
}

func TestAs_InterfaceViews(t *testing.T) {
	s := New(Value[any](42), Value[any](named("x")), Value[any](nil), Nest(FromValues[any]("a")))
	v, err := GetAs[any](s, Path{0})
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := v.(int); !ok || n != 42 {
		t.Errorf("expected the int element, got %T %v", v, v)
	}
	if _, err := GetAs[fmt.Stringer](s, Path{0}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch for int as Stringer, got %v", err)
	}
	if _, err := GetAs[json.Marshaler](s, Path{0}); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch for int as Marshaler, got %v", err)
	}
	str, err := GetAs[fmt.Stringer](s, Path{1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := str.(named); !ok {
		t.Errorf("expected the named element, got %T", str)
	}
	v, err = GetAs[any](s, Path{2})
	if err != nil || v != nil {
		t.Errorf("expected nil element, got %v (%v)", v, err)
	}
	v, err = GetAs[any](s, Path{3})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(*Section[any]); !ok {
		t.Errorf("expected the nested section, got %T", v)
	}
	sl, err := GetAs[Slot[any]](s, Path{0})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := sl.Value(); got != 42 {
		t.Errorf("expected slot of 42, got %v", sl)
	}
}

func TestRemoveAs_MismatchKeeps(t *testing.T) {
	s := New(Value[any](42))
	if _, err := RemoveAs[fmt.Stringer](s, Path{0}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("failed view removed the element")
	}
	v, err := RemoveAs[any](s, Path{0})
	if err != nil || v != 42 || s.Len() != 0 {
		t.Errorf("expected 42 removed, got %v (%v), len %d", v, err, s.Len())
	}
}

type fmtStringer interface{ String() string }

type named string

func (n named) String() string { return string(n) }

func TestSlotOf(t *testing.T) {
	if _, err := SlotOf[string](3); !errors.Is(err, ErrElementTypeMismatch) {
		t.Errorf("expected ErrElementTypeMismatch, got %v", err)
	}
	if _, err := SlotOf[string](nil); !errors.Is(err, ErrElementTypeMismatch) {
		t.Errorf("expected ErrElementTypeMismatch for nil, got %v", err)
	}
	sl, err := SlotOf[any](nil)
	if err != nil || sl.IsSection() {
		t.Errorf("expected nil value slot, got %v (%v)", sl, err)
	}
	ssl, err := SlotOf[string](FromValues("a"))
	if err != nil || !ssl.IsSection() {
		t.Errorf("expected section slot, got %v (%v)", ssl, err)
	}
	ssl, err = SlotOf[string](Value("a"))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := ssl.Value(); !ok || v != "a" {
		t.Errorf("expected a, got %v", ssl)
	}
}

func TestInsertAny(t *testing.T) {
	s := nested()
	if err := s.InsertAny("x", Path{0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertAny(FromValues("y"), Path{0}); err != nil {
		t.Fatal(err)
	}
	if got, _ := GetAs[string](s, Path{0, 0}); got != "y" {
		t.Errorf("expected y, got %q", got)
	}
	if got, _ := GetAs[string](s, Path{1, 0}); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	if err := s.InsertAny(1.5, Path{}); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("empty path must be reported first, got %v", err)
	}
}
