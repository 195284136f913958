package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/signadot/mutcoll/collection"
	"github.com/signadot/mutcoll/section"
)

// Script is a replay input.
//
//	initial: [a, [b, c]]
//	ops:
//	- op: append
//	  value: d
//	- op: moveAtPath
//	  from: "[1][0]"
//	  to: "[0]"
type Script struct {
	Initial []any `yaml:"initial"`
	Ops     []Op  `yaml:"ops"`
}

// Op is one collection mutation. Which fields are read depends on Op.
type Op struct {
	Op     string `yaml:"op"`
	Index  int    `yaml:"index,omitempty"`
	Start  int    `yaml:"start,omitempty"`
	End    int    `yaml:"end,omitempty"`
	Path   string `yaml:"path,omitempty"`
	From   string `yaml:"from,omitempty"`
	To     string `yaml:"to,omitempty"`
	Value  any    `yaml:"value,omitempty"`
	Values []any  `yaml:"values,omitempty"`
}

func readScript(in io.Reader, name string) (*Script, error) {
	d, err := readInput(in, name)
	if err != nil {
		return nil, err
	}
	s := &Script{}
	if err := yaml.Unmarshal(d, s); err != nil {
		return nil, fmt.Errorf("error decoding script %s: %w", name, err)
	}
	return s, nil
}

func (o *Op) apply(c *collection.Collection[any]) error {
	switch o.Op {
	case "set":
		return c.Set(toSlots(o.Values))
	case "insertAt":
		return c.InsertAt(toSlot(o.Value), o.Index)
	case "removeAt":
		_, err := c.RemoveAt(o.Index)
		return err
	case "removeFirst":
		_, _, err := c.RemoveFirst()
		return err
	case "removeLast":
		_, _, err := c.RemoveLast()
		return err
	case "removeAll":
		_, err := c.RemoveAll()
		return err
	case "append":
		return c.Append(toSlot(o.Value))
	case "appendAll":
		return c.AppendAll(toSlots(o.Values)...)
	case "replaceRange":
		return c.ReplaceRange(o.Start, o.End, toSlots(o.Values))
	case "move":
		from, to, err := o.paths()
		if err != nil {
			return err
		}
		if len(from) != 1 || len(to) != 1 {
			return fmt.Errorf("move takes top level positions, got %s and %s", from, to)
		}
		_, err = c.Move(from[0], to[0])
		return err
	case "insertAtPath":
		p, err := section.ParsePath(o.Path)
		if err != nil {
			return err
		}
		return c.InsertAtPath(toSlot(o.Value), p)
	case "removeAtPath":
		p, err := section.ParsePath(o.Path)
		if err != nil {
			return err
		}
		_, err = c.RemoveAtPath(p)
		return err
	case "replaceAtPath":
		p, err := section.ParsePath(o.Path)
		if err != nil {
			return err
		}
		_, err = c.ReplaceAtPath(toSlot(o.Value), p)
		return err
	case "moveAtPath":
		from, to, err := o.paths()
		if err != nil {
			return err
		}
		_, err = c.MoveAtPath(from, to)
		return err
	}
	return fmt.Errorf("unknown op %q", o.Op)
}

func (o *Op) paths() (from, to section.Path, err error) {
	from, err = section.ParsePath(o.From)
	if err != nil {
		return nil, nil, err
	}
	to, err = section.ParsePath(o.To)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
