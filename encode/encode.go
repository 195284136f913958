package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/signadot/mutcoll/change"
)

type plainer interface {
	Plain() any
}

// Change writes the leaves of c, one per line.
func Change[E any](w io.Writer, c change.Deep[E], opts ...EncodeOption) error {
	es := newEncState(opts)
	for _, leaf := range c.Leaves() {
		if err := es.leaf(w, leaf.Kind(), pathOf(leaf), elementOf(leaf)); err != nil {
			return err
		}
	}
	return nil
}

// FlatChange writes a flat change as Change writes its deep form.
func FlatChange[E any](w io.Writer, c change.Flat[E], opts ...EncodeOption) error {
	return Change(w, c.Deep(), opts...)
}

// ChangeString is Change into a string. Encoding errors are rendered in
// place of the element.
func ChangeString[E any](c change.Deep[E], opts ...EncodeOption) string {
	var buf bytes.Buffer
	if err := Change(&buf, c, opts...); err != nil {
		fmt.Fprintf(&buf, "<error: %v>\n", err)
	}
	return buf.String()
}

func pathOf[E any](c change.Deep[E]) string {
	p, _ := c.Path()
	return p.String()
}

func elementOf[E any](c change.Deep[E]) any {
	el, _ := c.Element()
	var v any = el
	if p, ok := v.(plainer); ok {
		return p.Plain()
	}
	return v
}

func (es *EncState) leaf(w io.Writer, k change.Kind, path string, el any) error {
	sign, attr := "+", InsertColor
	if k == change.KindRemove {
		sign, attr = "-", RemoveColor
	}
	val, err := es.inline(el)
	if err != nil {
		return fmt.Errorf("error encoding %s %s: %w", k, path, err)
	}
	_, err = fmt.Fprintf(w, "%s %s %s\n",
		es.color(attr, sign),
		es.color(PathColor, path),
		es.color(ValueColor, val))
	return err
}

func (es *EncState) inline(v any) (string, error) {
	if es.format == JSONFormat {
		d, err := json.Marshal(v)
		return string(d), err
	}
	d, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(d)), nil
}

// Snapshot writes plain as a document in the configured format.
func Snapshot(w io.Writer, plain any, opts ...EncodeOption) error {
	es := newEncState(opts)
	var (
		d   []byte
		err error
	)
	switch es.format {
	case JSONFormat:
		d, err = json.MarshalIndent(plain, "", strings.Repeat(" ", es.indent))
		if err == nil {
			d = append(d, '\n')
		}
	default:
		d, err = yaml.MarshalWithOptions(plain, yaml.Indent(es.indent), yaml.IndentSequence(true))
	}
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}
	_, err = w.Write(d)
	return err
}
