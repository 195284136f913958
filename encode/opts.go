package encode

import "fmt"

type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	default:
		return "yaml"
	}
}

// ParseFormat parses "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml", "":
		return YAMLFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// FormatSuffix returns the file extension for the given format.
func FormatSuffix(f Format) string {
	switch f {
	case JSONFormat:
		return ".json"
	default:
		return ".yaml"
	}
}

type EncodeOption func(*EncState)

// EncState holds the settings of one encoding call.
type EncState struct {
	format Format
	Color  func(ColorAttr, string) string
	indent int
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

func EncodeFormat(f Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
