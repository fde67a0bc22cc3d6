package svg

import (
	"fmt"
	"io"
	"strings"

	"gantt2svg/internal/idgen"
)

// DragFunc handles one drag step of dx, dy pixels on a handle.
type DragFunc func(dx, dy float64)

// Document is a standalone SVG document with a defs section, optional
// inline scripts and registered drag handlers.
type Document struct {
	ID     string
	Width  float64
	Height float64

	root    *Element
	defs    *Element
	scripts map[string]bool
	order   []string
	drags   map[*Element]DragFunc
}

// New returns an empty document. An empty id is replaced by a generated one.
func New(id string, width, height float64) (*Document, error) {
	if id == "" {
		var err error
		if id, err = idgen.Generate(); err != nil {
			return nil, fmt.Errorf("document id: %w", err)
		}
	}
	root := NewElement("svg").
		Attr("xmlns", "http://www.w3.org/2000/svg").
		Attr("id", id).
		Attr("width", width).
		Attr("height", height).
		Attr("viewBox", fmt.Sprintf("0 0 %s %s", Num(width), Num(height)))
	return &Document{
		ID:      id,
		Width:   width,
		Height:  height,
		root:    root,
		defs:    root.Append("defs"),
		scripts: make(map[string]bool),
		drags:   make(map[*Element]DragFunc),
	}, nil
}

// Root returns the <svg> element.
func (d *Document) Root() *Element { return d.root }

// Fill paints the whole document background. Invisible colors are ignored
// by the caller.
func (d *Document) Fill(color string) {
	bg := NewElement("rect").
		Attr("width", "100%").
		Attr("height", "100%").
		Attr("fill", color)
	d.root.children = append([]*Element{bg}, d.root.children...)
}

// ClipRect defines a rectangular clip path of the given content size. The
// rectangle starts one pixel up and left so edge strokes stay visible.
func (d *Document) ClipRect(id string, width, height float64) {
	d.defs.Append("clipPath").Attr("id", id).
		Append("rect").
		Attr("x", -1).
		Attr("y", -1).
		Attr("width", width+1).
		Attr("height", height+1)
}

// Script embeds code once per key.
func (d *Document) Script(key, code string) {
	if d.scripts[key] {
		return
	}
	d.scripts[key] = true
	d.order = append(d.order, code)
}

// OnDrag registers fn as the drag handler of handle.
func (d *Document) OnDrag(handle *Element, fn DragFunc) {
	d.drags[handle] = fn
}

// Drag delivers one drag step to handle. It reports whether a handler was
// registered.
func (d *Document) Drag(handle *Element, dx, dy float64) bool {
	fn, ok := d.drags[handle]
	if ok {
		fn(dx, dy)
	}
	return ok
}

// WriteTo writes the XML declaration and the document.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	root := *d.root
	for _, code := range d.order {
		s := NewElement("script").Attr("type", "application/ecmascript").SetText(code)
		root.children = append(root.children[:len(root.children):len(root.children)], s)
	}
	root.write(&b, 0)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (d *Document) String() string {
	var b strings.Builder
	d.WriteTo(&b)
	return b.String()
}
