// Package render draws the label, axis and riser panels of a laid-out
// chart into an SVG container.
package render

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"gantt2svg/internal/axis"
	"gantt2svg/internal/config"
	"gantt2svg/internal/host"
	"gantt2svg/internal/layout"
	"gantt2svg/internal/svg"
	"gantt2svg/internal/task"
)

// Input is one draw pass.
type Input struct {
	Doc       *svg.Document
	Container *svg.Element
	Geometry  *layout.Geometry
	Axis      *axis.Axis
	Tasks     []task.Task
	Style     config.Style
	Host      host.Host
}

// Panels holds the scroll group of each panel: the element whose
// translation pans the panel's content.
type Panels struct {
	Labels *svg.Element
	Axis   *svg.Element
	Risers *svg.Element
}

// Draw renders every panel and returns their scroll groups.
func Draw(in Input) Panels {
	g := in.Geometry
	for _, p := range []layout.Panel{g.Labels, g.Axis, g.Risers} {
		if p.Clipped() {
			in.Doc.ClipRect(p.ClipID, p.Width, p.Height)
		}
	}

	var out Panels
	out.Labels = region(in.Container, "labels", g.Labels, in.Style.Labels.Fill, in.Style.Labels.Border, func(s *svg.Element) {
		drawLabels(s, in)
	})
	if in.Axis.Count > 0 {
		out.Axis = region(in.Container, "axis", g.Axis, in.Style.TimeAxis.Fill, in.Style.TimeAxis.Border, func(s *svg.Element) {
			drawAxis(s, in)
		})
		out.Risers = region(in.Container, "risers", g.Risers, in.Style.Risers.Fill, in.Style.Risers.Border, func(s *svg.Element) {
			newRiserDrawer(in).draw(s)
		})
	}

	log.WithFields(log.Fields{"tasks": len(in.Tasks), "cells": in.Axis.Count}).Debug("drew panels")
	return out
}

// region draws a panel frame: an optional clip and background, a scroll
// group filled by content, and an optional border on top.
func region(parent *svg.Element, class string, p layout.Panel, fill string, border config.Line, content func(*svg.Element)) *svg.Element {
	group := parent.Append("g").Attr("class", class)
	if p.Clipped() {
		group.Attr("clip-path", fmt.Sprintf("url(#%s)", p.ClipID))
	}
	group.Translate(p.X, p.Y)

	if host.IsVisible(fill) {
		group.Append("rect").
			Attr("x", 0).
			Attr("y", 0).
			Attr("width", p.Width).
			Attr("height", p.Height).
			Attr("fill", fill)
	}

	scroll := group.Append("g").Attr("class", class+"-scroll").Translate(0, 0)
	content(scroll)

	if host.IsLineVisible(border) {
		group.Append("rect").
			Attr("x", 0).
			Attr("y", 0).
			Attr("width", p.Width).
			Attr("height", p.Height).
			Attr("fill", "none").
			Attr("stroke", border.Color).
			Attr("stroke-width", border.Width)
	}
	return scroll
}

func drawLabels(scroll *svg.Element, in Input) {
	g := in.Geometry
	st := in.Style.Labels
	for i, text := range g.LabelText {
		row := scroll.Append("g").Translate(0, g.Cell.Height*float64(i))
		row.Append("text").
			Attr("x", g.Labels.Width-g.Padding.LabelInset).
			Attr("y", g.LabelSize.Height+1).
			Attr("text-anchor", "end").
			Attr("fill", nonEmpty(st.Color)).
			Attr("style", "font: "+st.Font).
			SetText(text)
		if i > 0 && host.IsLineVisible(st.Dividers) {
			stroke(row.Append("path").Attr("d", "M0 0H"+svg.Num(g.Labels.Width)), st.Dividers)
		}
	}
}

func drawAxis(scroll *svg.Element, in Input) {
	g := in.Geometry
	st := in.Style.TimeAxis
	dividers := host.IsLineVisible(st.Dividers)

	if dividers {
		d := fmt.Sprintf("M0 %sH%s", svg.Num(g.AxisRowHeights[0]), svg.Num(g.Axis.OverallWidth))
		stroke(scroll.Append("path").Attr("d", d), st.Dividers).Attr("stroke-linecap", "butt")
	}

	var top float64
	for i, row := range in.Axis.Rows {
		rowStyle := st.Row(i).Label
		size := g.AxisLabelSizes[i]
		rowGroup := scroll.Append("g").Translate(0, top)
		for idx, c := range row {
			cell := rowGroup.Append("g").Translate(float64(c.Start)*g.Cell.Width, 0)
			if idx > 0 && dividers {
				stroke(cell.Append("path").Attr("d", "M0 0V"+svg.Num(g.AxisRowHeights[i])), st.Dividers).
					Attr("stroke-linecap", "butt")
			}
			cell.Append("text").
				Attr("class", "month_text").
				Attr("x", (size.Width+g.Padding.CellX)/2).
				Attr("y", size.Height).
				Attr("text-anchor", "middle").
				Attr("fill", nonEmpty(rowStyle.Color)).
				Attr("style", "font: "+rowStyle.Font).
				SetText(c.Text)
		}
		top += g.AxisRowHeights[i]
	}
}

// stroke applies a visible line style to el.
func stroke(el *svg.Element, l config.Line) *svg.Element {
	return el.Attr("stroke", l.Color).Attr("stroke-width", l.Width)
}

// nonEmpty turns "" into nil so the attribute is left out.
func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func gridPath(rows, cols int, cell host.Size, width, height float64) string {
	var b strings.Builder
	for i := 1; i < rows; i++ {
		fmt.Fprintf(&b, "M0 %sh%s", svg.Num(cell.Height*float64(i)), svg.Num(width))
	}
	for i := 1; i < cols; i++ {
		fmt.Fprintf(&b, "M%s 0v%s", svg.Num(cell.Width*float64(i)), svg.Num(height))
	}
	return b.String()
}
