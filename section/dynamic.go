package section

import (
	"fmt"
	"reflect"
)

// As views a slot as Z. Z may be Slot[T], *Section[T], T, or any type the
// held value (or section) can be asserted to.
func As[Z any, T any](s Slot[T]) (Z, error) {
	var zero Z
	if reflect.TypeFor[Z]() == reflect.TypeFor[Slot[T]]() {
		return any(s).(Z), nil
	}
	if s.sub != nil {
		if z, ok := any(s.sub).(Z); ok {
			return z, nil
		}
		return zero, fmt.Errorf("%w: cannot view section as %s", ErrTypeMismatch, reflect.TypeFor[Z]())
	}
	if z, ok := any(s.value).(Z); ok {
		return z, nil
	}
	if any(s.value) == nil && reflect.TypeFor[Z]().Kind() == reflect.Interface {
		// a nil element of an interface T views as the nil Z.
		return zero, nil
	}
	return zero, fmt.Errorf("%w: cannot view %T as %s", ErrTypeMismatch, s.value, reflect.TypeFor[Z]())
}

// GetAs returns the slot at p viewed as Z.
func GetAs[Z any, T any](s *Section[T], p Path) (Z, error) {
	sl, err := s.Get(p)
	if err != nil {
		var zero Z
		return zero, err
	}
	z, err := As[Z](sl)
	if err != nil {
		return z, fmt.Errorf("get %s: %w", p, err)
	}
	return z, nil
}

// RemoveAs removes the slot at p and returns it viewed as Z. The view is
// checked before anything is removed.
func RemoveAs[Z any, T any](s *Section[T], p Path) (Z, error) {
	z, err := GetAs[Z](s, p)
	if err != nil {
		return z, err
	}
	if _, err := s.Remove(p); err != nil {
		var zero Z
		return zero, err
	}
	return z, nil
}

// SlotOf converts el into a slot of a section of T. el may be a Slot[T], a
// *Section[T] or a T.
func SlotOf[T any](el any) (Slot[T], error) {
	switch x := el.(type) {
	case Slot[T]:
		return x, nil
	case *Section[T]:
		return Nest(x), nil
	case T:
		return Value(x), nil
	}
	var zero T
	if el == nil && any(zero) == nil {
		// T is an interface type and nil is one of its values.
		return Value(zero), nil
	}
	return Slot[T]{}, fmt.Errorf("%w: cannot insert %T into section of %s",
		ErrElementTypeMismatch, el, reflect.TypeFor[T]())
}

// InsertAny inserts an element of unknown static type at p.
func (s *Section[T]) InsertAny(el any, p Path) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: insert", ErrEmptyPath)
	}
	sl, err := SlotOf[T](el)
	if err != nil {
		return fmt.Errorf("insert %s: %w", p, err)
	}
	return s.Insert(sl, p)
}
