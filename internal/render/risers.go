package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gantt2svg/internal/config"
	"gantt2svg/internal/host"
	"gantt2svg/internal/layout"
	"gantt2svg/internal/svg"
	"gantt2svg/internal/task"
)

// riserStyle is the resolved paint of one bar or line.
type riserStyle struct {
	color    string
	inverted string
	border   config.Line
}

// glyph is a resolved marker.
type glyph struct {
	shape  string
	size   float64
	color  string
	border config.Line
	crisp  bool
}

type riserDrawer struct {
	in      Input
	geo     *layout.Geometry
	styles  host.StyleResolver
	base    riserStyle
	tooltip string
	altFill string
}

func newRiserDrawer(in Input) *riserDrawer {
	s := in.Host.Styles
	d := &riserDrawer{
		in:     in,
		geo:    in.Geometry,
		styles: s,
		base:   seriesRiserStyle(s, 0, in.Style.Risers.Data.InvertedStartStop.Color),
	}
	d.tooltip = host.String(s.SeriesProperty(0, 0, "tooltip"))
	if host.IsVisible(in.Style.Risers.AltRowFill) {
		d.altFill = in.Style.Risers.AltRowFill
	}
	return d
}

func seriesRiserStyle(s host.StyleResolver, series int, inverted string) riserStyle {
	return riserStyle{
		color:    host.String(s.SeriesProperty(series, host.NoGroup, "color")),
		inverted: inverted,
		border: config.Line{
			Color: host.String(s.SeriesProperty(series, host.NoGroup, "border.color")),
			Width: host.Float(s.SeriesProperty(series, host.NoGroup, "border.width")),
		},
	}
}

func (d *riserDrawer) x(t time.Time) float64 {
	return d.in.Axis.Scale.Map(t)
}

func (d *riserDrawer) draw(scroll *svg.Element) {
	cell := d.geo.Cell
	for idx, t := range d.in.Tasks {
		row := scroll.Append("g").Translate(0, cell.Height*float64(idx))
		if d.altFill != "" && idx%2 == 1 {
			row.Append("rect").
				Attr("x", 0).
				Attr("y", 0).
				Attr("width", d.geo.Risers.OverallWidth).
				Attr("height", cell.Height).
				Attr("fill", d.altFill)
		}
		for _, r := range t.Risers {
			d.drawRiser(row, r)
		}
		for i, m := range t.Milestones {
			d.drawMilestone(row, i, m)
		}
	}

	if dividers := d.in.Style.Risers.Dividers; host.IsLineVisible(dividers) {
		grid := gridPath(len(d.in.Tasks), d.in.Axis.Count, cell, d.geo.Risers.OverallWidth, d.geo.Risers.OverallHeight)
		if grid != "" {
			stroke(scroll.Append("path").Attr("d", grid), dividers).Attr("stroke-linecap", "butt")
		}
	}
}

func (d *riserDrawer) styleFor(r task.Riser) riserStyle {
	if series, ok := host.Index(r.Color); ok {
		return seriesRiserStyle(d.styles, series, d.base.inverted)
	}
	if c, ok := r.Color.(string); ok && c != "" {
		st := d.base
		st.color = c
		return st
	}
	return d.base
}

func (d *riserDrawer) shapeFor(r task.Riser) string {
	if series, ok := host.Index(r.Shape); ok {
		return strings.ToLower(host.String(d.styles.SeriesProperty(series, host.NoGroup, "riserShape")))
	}
	if s, ok := r.Shape.(string); ok && strings.EqualFold(s, "line") {
		return "line"
	}
	return "bar"
}

func (d *riserDrawer) drawRiser(row *svg.Element, r task.Riser) {
	if !r.Drawable() {
		return
	}
	if !r.HasStart() || !r.HasStop() {
		d.drawEndpoint(row, r)
		return
	}

	st := d.styleFor(r)
	fill := st.color
	if r.Inverted() {
		fill = st.inverted
	}
	start, stop := r.Span()
	x0, x1 := d.x(start), d.x(stop)
	cellH := d.geo.Cell.Height

	var el *svg.Element
	if d.shapeFor(r) == "line" {
		width := st.border.Width
		if width == 0 {
			width = 1
		}
		el = row.Append("line").
			Attr("x1", x0).
			Attr("y1", cellH/2).
			Attr("x2", x1).
			Attr("y2", cellH/2).
			Attr("stroke", nonEmpty(fill)).
			Attr("stroke-width", width)
	} else {
		var borderOffset float64
		if host.IsLineVisible(st.border) {
			borderOffset = st.border.Width
		}
		h := (1 - d.in.Style.Risers.Inset) * cellH
		el = row.Append("rect").
			Attr("x", x0).
			Attr("y", (cellH-h)/2).
			Attr("width", math.Max(2, x1-x0)).
			Attr("height", h-1+borderOffset).
			Attr("fill", nonEmpty(fill))
		if borderOffset > 0 {
			stroke(el, st.border)
		}
	}
	el.Attr("class", d.styles.ClassName("riser", 0, r.GroupID, "bar"))
	d.title(el)
}

// drawEndpoint draws the glyph of a riser that has only a start or only a
// stop.
func (d *riserDrawer) drawEndpoint(row *svg.Element, r task.Riser) {
	ms := d.in.Style.Risers.Data.OnlyStop
	at := r.Stop
	if r.HasStart() {
		ms = d.in.Style.Risers.Data.OnlyStart
		at = r.Start
	}

	gl := glyph{shape: ms.Marker.Shape, size: ms.Marker.Size, color: ms.Color, border: ms.Border}
	if s, ok := r.Shape.(string); ok && s != "" && !strings.EqualFold(s, "line") {
		gl.shape = s
	} else if series, ok := host.Index(r.Shape); ok && gl.shape == "" {
		gl.shape = host.String(d.styles.SeriesProperty(series, host.NoGroup, "marker.shape"))
	}
	gl.shape = strings.ToLower(gl.shape)
	if gl.size == 0 {
		switch gl.shape {
		case "circle", "dollar":
			gl.size = 12
		case "":
			gl.size = 15
		default:
			gl.size = 10
		}
	}

	node := d.appendGlyph(row, gl)
	node.Translate(d.x(at), d.geo.Cell.Height/2).
		Attr("class", d.styles.ClassName("riser", 0, r.GroupID, "riser"))
	d.title(node)
}

// drawMilestone draws the i-th milestone of a task, styled by series i+1
// and the milestone's group.
func (d *riserDrawer) drawMilestone(row *svg.Element, i int, m task.Milestone) {
	if m.Time.IsZero() {
		return
	}
	series := i + 1
	prop := func(path string) any { return d.styles.SeriesProperty(series, m.GroupID, path) }

	gl := glyph{
		shape: strings.ToLower(host.String(prop("marker.shape"))),
		size:  host.Float(prop("marker.size")),
		color: host.String(prop("color")),
		border: config.Line{
			Color: host.String(prop("marker.border.color")),
			Width: host.Float(prop("marker.border.width")),
		},
	}
	if gl.shape == "" {
		gl.shape = "diamond"
	}
	if gl.size == 0 {
		gl.size = 10
	}

	node := d.appendGlyph(row, gl)
	node.Translate(d.x(m.Time), d.geo.Cell.Height/2).
		Attr("class", d.styles.ClassName("marker", 0, m.GroupID, "marker"))
	d.title(node)
}

// appendGlyph adds the glyph element centered on the origin. An empty shape
// is a vertical tick mark.
func (d *riserDrawer) appendGlyph(parent *svg.Element, gl glyph) *svg.Element {
	outline := func(minWidth float64) {
		gl.border.Color = gl.color
		if gl.border.Width == 0 {
			gl.border.Width = minWidth
		}
		gl.color = ""
	}

	var node *svg.Element
	switch gl.shape {
	case "circle":
		node = parent.Append("circle").Attr("cx", 0).Attr("cy", 0).Attr("r", gl.size)
	case "dollar":
		node = parent.Append("path").Attr("d", dollarPath(gl.size))
		outline(1)
	case "":
		h := gl.size
		node = parent.Append("path").Attr("d", fmt.Sprintf("M0 %sv%s", svg.Num(-h/2), svg.Num(h)))
		outline(2)
		gl.crisp = true
	default:
		path, strokeOnly := d.in.Host.Shapes.ShapePath(gl.shape, gl.size)
		node = parent.Append("path").Attr("d", path)
		if strokeOnly {
			outline(1)
		}
	}

	fill := any("none")
	if gl.color != "" {
		fill = gl.color
	}
	rendering := "auto"
	if gl.crisp {
		rendering = "crispEdges"
	}
	node.Attr("fill", fill).
		Attr("shape-rendering", rendering).
		Attr("stroke", nonEmpty(gl.border.Color))
	if gl.border.Width > 0 {
		node.Attr("stroke-width", gl.border.Width)
	}
	return node.Attr("stroke-linecap", "butt")
}

// dollarPath is a currency sign of the given height: a vertical bar
// crossed by an S curve.
func dollarPath(size float64) string {
	h := size / 2
	r := h * 0.375
	r2 := r * 2
	n := svg.Num
	return fmt.Sprintf("M0 %sV%sM%s %sC%s %s %s %s %s %sS%s %s 0 0S%s %s %s %sC%s %s %s %s %s %s",
		n(-h), n(h),
		n(-r), n(r),
		n(-r), n(r2), n(r), n(r2), n(r), n(r),
		n(r*0.2666), n(r*0.1333),
		n(-r), n(-r/3), n(-r), n(-r),
		n(-r), n(-r2), n(r), n(-r2), n(r), n(-r))
}

func (d *riserDrawer) title(el *svg.Element) {
	if d.tooltip != "" {
		el.Append("title").SetText(d.tooltip)
	}
}
