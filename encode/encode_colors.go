package encode

import (
	"github.com/fatih/color"
)

// ColorAttr names the parts of a rendered change.
type ColorAttr int

const (
	InsertColor ColorAttr = iota
	RemoveColor
	PathColor
	ValueColor
	SepColor
)

// Colors maps change parts to terminal colors. Parts without a color are
// written unchanged.
type Colors struct {
	Map map[ColorAttr]*color.Color
}

func NewColors() *Colors {
	return &Colors{
		Map: map[ColorAttr]*color.Color{
			InsertColor: color.New(color.FgGreen, color.Bold),
			RemoveColor: color.New(color.FgRed, color.Bold),
			PathColor:   color.RGB(74, 92, 138),
			ValueColor:  color.New(color.FgHiWhite),
			SepColor:    color.New(color.Faint),
		},
	}
}

// Color renders s in the color of a. s is not a format string.
func (c *Colors) Color(a ColorAttr, s string) string {
	if c == nil {
		return s
	}
	col := c.Map[a]
	if col == nil {
		return s
	}
	return col.Sprint(s)
}
