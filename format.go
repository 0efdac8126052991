package sml

import (
	"strconv"

	"github.com/fatih/color"

	"github.com/KimNorgaard/go-sml/ast"
	"github.com/KimNorgaard/go-sml/internal/scalar"
)

// Colors selects how each part of printed output is highlighted. A nil
// entry prints that part plainly.
type Colors struct {
	Element   *color.Color
	Attribute *color.Color
	String    *color.Color
	Number    *color.Color
	Keyword   *color.Color // true, false, -
	End       *color.Color
}

// DefaultColors returns the colour table used by the sml command on a
// terminal. Its colours are enabled even when color.NoColor is set.
func DefaultColors() *Colors {
	c := &Colors{
		Element:   color.New(color.FgBlue, color.Bold),
		Attribute: color.New(color.FgCyan),
		String:    color.New(color.FgGreen),
		Number:    color.New(color.FgMagenta),
		Keyword:   color.New(color.FgYellow),
		End:       color.New(color.FgBlue),
	}
	for _, col := range []*color.Color{c.Element, c.Attribute, c.String, c.Number, c.Keyword, c.End} {
		col.EnableColor()
	}
	return c
}

// formatter renders a tree in canonical form.
type formatter struct {
	buf    []byte
	indent int
	colors *Colors
	tmp    []byte
}

var endLiteral = []byte("end")

func newFormatter(opts *options) *formatter {
	indent := defaultIndent
	if opts.indent != nil {
		indent = *opts.indent
	}
	return &formatter{indent: indent, colors: opts.colors}
}

func (f *formatter) format(root ast.Element) []byte {
	f.writeElement(root, 0)
	return f.buf
}

func (f *formatter) writeIndent(depth int) {
	for range depth * f.indent {
		f.buf = append(f.buf, ' ')
	}
}

func (f *formatter) writeElement(e ast.Element, depth int) {
	f.openElement(e.NameBytes(), depth)
	for _, a := range e.Attributes() {
		f.writeAttribute(a.NameBytes(), a.Values(), depth+1)
	}
	for _, c := range e.Children() {
		f.writeElement(c, depth+1)
	}
	f.closeElement(depth)
}

func (f *formatter) openElement(name []byte, depth int) {
	f.writeIndent(depth)
	f.write(f.color(func(c *Colors) *color.Color { return c.Element }), name)
	f.buf = append(f.buf, '\n')
}

func (f *formatter) writeAttribute(name []byte, vals []ast.Value, depth int) {
	f.writeIndent(depth)
	f.write(f.color(func(c *Colors) *color.Color { return c.Attribute }), name)
	for _, v := range vals {
		f.buf = append(f.buf, ' ')
		f.writeValue(v)
	}
	f.buf = append(f.buf, '\n')
}

func (f *formatter) closeElement(depth int) {
	f.writeIndent(depth)
	f.write(f.color(func(c *Colors) *color.Color { return c.End }), endLiteral)
	f.buf = append(f.buf, '\n')
}

func (f *formatter) writeValue(v ast.Value) {
	f.tmp = f.tmp[:0]
	var c *color.Color
	switch v.Kind() {
	case ast.Null:
		f.tmp = append(f.tmp, '-')
		c = f.color(func(c *Colors) *color.Color { return c.Keyword })
	case ast.True, ast.False:
		f.tmp = strconv.AppendBool(f.tmp, v.Bool())
		c = f.color(func(c *Colors) *color.Color { return c.Keyword })
	case ast.Int:
		f.tmp = strconv.AppendInt(f.tmp, v.Int(), 10)
		c = f.color(func(c *Colors) *color.Color { return c.Number })
	case ast.Float:
		f.tmp = scalar.AppendFloat(f.tmp, v.Float())
		c = f.color(func(c *Colors) *color.Color { return c.Number })
	default:
		f.tmp = scalar.AppendString(f.tmp, v.Bytes())
		c = f.color(func(c *Colors) *color.Color { return c.String })
	}
	f.write(c, f.tmp)
}

func (f *formatter) color(pick func(*Colors) *color.Color) *color.Color {
	if f.colors == nil {
		return nil
	}
	return pick(f.colors)
}

func (f *formatter) write(c *color.Color, s []byte) {
	if c == nil {
		f.buf = append(f.buf, s...)
		return
	}
	f.buf = append(f.buf, c.Sprint(string(s))...)
}
