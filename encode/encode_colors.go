package encode

import (
	"github.com/fatih/color"

	"github.com/signadot/jsonschema/ir"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: color.New(color.FgWhite).SprintfFunc(),
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		colors.Map[Colorable{t, FieldColor}] = color.New(color.FgCyan).SprintfFunc()
	}
	colors.Map[Colorable{ir.StringType, ValueColor}] = color.New(color.FgGreen).SprintfFunc()
	colors.Map[Colorable{ir.NumberType, ValueColor}] = color.New(color.FgYellow).SprintfFunc()
	colors.Map[Colorable{ir.BoolType, ValueColor}] = color.New(color.FgMagenta).SprintfFunc()
	colors.Map[Colorable{ir.NullType, ValueColor}] = color.New(color.FgHiBlack).SprintfFunc()
	return colors
}

func (c *Colors) Color(t ir.Type, attr ColorAttr, s string) string {
	f, ok := c.Map[Colorable{t, attr}]
	if !ok {
		f = c.Default
	}
	return f("%s", s)
}
