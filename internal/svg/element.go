// Package svg is a small retained SVG element tree. Elements keep their
// attributes in insertion order so output is stable, and group elements
// remember their translation so pan offsets can be read back and moved.
package svg

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

type attr struct {
	key, value string
}

// Element is one SVG node.
type Element struct {
	Name     string
	attrs    []attr
	text     string
	children []*Element

	tx, ty     float64
	translated bool
}

// NewElement returns a detached element.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Append adds a child element and returns it.
func (e *Element) Append(name string) *Element {
	c := NewElement(name)
	e.children = append(e.children, c)
	return c
}

// Attr sets an attribute. Numbers are formatted with Num; a nil value
// removes the attribute.
func (e *Element) Attr(key string, v any) *Element {
	if v == nil {
		e.remove(key)
		return e
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float64:
		s = Num(x)
	case int:
		s = strconv.Itoa(x)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	for i := range e.attrs {
		if e.attrs[i].key == key {
			e.attrs[i].value = s
			return e
		}
	}
	e.attrs = append(e.attrs, attr{key, s})
	return e
}

func (e *Element) remove(key string) {
	for i := range e.attrs {
		if e.attrs[i].key == key {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Get returns an attribute value.
func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.key == key {
			return a.value, true
		}
	}
	return "", false
}

// SetText sets the character data of the element.
func (e *Element) SetText(s string) *Element {
	e.text = s
	return e
}

func (e *Element) Text() string { return e.text }

// Translate sets the element's transform to translate(x, y).
func (e *Element) Translate(x, y float64) *Element {
	e.tx, e.ty, e.translated = x, y, true
	return e.Attr("transform", "translate("+Num(x)+", "+Num(y)+")")
}

// Translation returns the offset last set by Translate.
func (e *Element) Translation() (float64, float64) {
	return e.tx, e.ty
}

// Find returns every descendant, depth first, for which match is true.
func (e *Element) Find(match func(*Element) bool) []*Element {
	var out []*Element
	for _, c := range e.children {
		if match(c) {
			out = append(out, c)
		}
		out = append(out, c.Find(match)...)
	}
	return out
}

// ByClass matches elements whose class attribute equals class.
func ByClass(class string) func(*Element) bool {
	return func(e *Element) bool {
		v, _ := e.Get("class")
		return v == class
	}
}

// ByName matches elements with the given tag name.
func ByName(name string) func(*Element) bool {
	return func(e *Element) bool { return e.Name == name }
}

func (e *Element) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.attrs {
		fmt.Fprintf(b, ` %s="%s"`, a.key, escapeXML(a.value))
	}
	switch {
	case len(e.children) == 0 && e.text == "":
		b.WriteString("/>\n")
	case len(e.children) == 0:
		b.WriteByte('>')
		b.WriteString(escapeXML(e.text))
		fmt.Fprintf(b, "</%s>\n", e.Name)
	default:
		b.WriteString(">\n")
		if e.text != "" {
			b.WriteString(indent + "  " + escapeXML(e.text) + "\n")
		}
		for _, c := range e.children {
			c.write(b, depth+1)
		}
		fmt.Fprintf(b, "%s</%s>\n", indent, e.Name)
	}
}

// WriteTo writes the element and its subtree as XML.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	e.write(&b, 0)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Num formats v with at most three decimals and no trailing zeros.
func Num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// escapeXML replaces XML special characters (&, <, >, ", ') with their
// entity references so the string can be embedded in attributes or text.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
