package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/goccy/go-yaml"
	"github.com/signadot/mutcoll/section"
)

func readInput(in io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(name)
}

// readSequence reads a YAML or JSON sequence. Nested sequences become
// nested sections.
func readSequence(in io.Reader, name string) ([]section.Slot[any], error) {
	d, err := readInput(in, name)
	if err != nil {
		return nil, err
	}
	var vs []any
	if err := yaml.Unmarshal(d, &vs); err != nil {
		return nil, fmt.Errorf("error decoding sequence from %s: %w", name, err)
	}
	return toSlots(vs), nil
}

func toSlots(vs []any) []section.Slot[any] {
	res := make([]section.Slot[any], len(vs))
	for i, v := range vs {
		res[i] = toSlot(v)
	}
	return res
}

func toSlot(v any) section.Slot[any] {
	if vs, ok := v.([]any); ok {
		return section.Nest(section.New(toSlots(vs)...))
	}
	return section.Value(v)
}

func slotEqual(a, b section.Slot[any]) bool {
	return section.EqualFunc(a, b, func(x, y any) bool { return reflect.DeepEqual(x, y) })
}
