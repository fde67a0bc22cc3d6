// Package gantt runs one chart render: it turns raw task records into a
// laid-out, drawn and, when content overflows, scrollable Gantt chart.
package gantt

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"gantt2svg/internal/axis"
	"gantt2svg/internal/config"
	"gantt2svg/internal/host"
	"gantt2svg/internal/layout"
	"gantt2svg/internal/render"
	"gantt2svg/internal/scroll"
	"gantt2svg/internal/svg"
	"gantt2svg/internal/task"
)

// ContainerClass is the class of the group every chart is drawn into.
const ContainerClass = "com_ibi_gantt"

// containerOffset keeps outer borders off the document edge.
const containerOffset = 5

// RenderConfig is one render request.
type RenderConfig struct {
	Doc        *svg.Document
	Container  *svg.Element // parent of the chart group; nil means the document root
	Data       []task.Raw
	Properties config.Properties
	Width      float64
	Height     float64
	Host       host.Host
	Location   *time.Location // zone for dates without an offset; nil means UTC
	Padding    layout.Padding // zero value means layout.DefaultPadding

	// BaseColor fills the placeholder bars of RenderNoData.
	BaseColor string

	// RenderComplete, when set, is called once after a successful render.
	RenderComplete func()
}

// Result exposes the model built by a render. Vertical and Horizontal are
// nil unless the matching panels overflow.
type Result struct {
	Tasks      []task.Task
	Axis       *axis.Axis
	Geometry   *layout.Geometry
	Panels     render.Panels
	Vertical   *scroll.Bar
	Horizontal *scroll.Bar
}

// Render normalizes and sorts cfg.Data, resolves the time axis, lays out
// and draws the panels, and adds scroll bars for clipped panels.
// A data set without a usable time span fails with axis.ErrSpan and leaves
// the document untouched.
func Render(ctx context.Context, cfg RenderConfig) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	mode, err := task.ParseSortMode(cfg.Properties.Sort)
	if err != nil {
		return nil, fmt.Errorf("error sorting tasks: %w", err)
	}
	tasks := task.Sort(task.Normalize(cfg.Data, loc), mode)

	ax, err := axis.Resolve(tasks)
	if err != nil {
		return nil, fmt.Errorf("gantt: %w", err)
	}

	style := cfg.Properties.Style
	labels := make([]string, len(tasks))
	for i, t := range tasks {
		labels[i] = t.Label
	}
	axisFonts := make([]string, len(ax.Rows))
	for i := range ax.Rows {
		axisFonts[i] = style.TimeAxis.Row(i).Label.Font
	}
	geo, err := layout.Compute(layout.Input{
		ContainerID:   cfg.Doc.ID,
		Labels:        labels,
		Axis:          ax,
		LabelFont:     style.Labels.Font,
		AxisFonts:     axisFonts,
		Width:         cfg.Width,
		Height:        cfg.Height,
		MaxLabelWidth: cfg.Properties.Layout.MaxLabelWidth,
		Padding:       cfg.Padding,
		Measurer:      cfg.Host.Measurer,
	})
	if err != nil {
		return nil, fmt.Errorf("gantt: %w", err)
	}

	parent := cfg.Container
	if parent == nil {
		parent = cfg.Doc.Root()
	}
	container := parent.Append("g").
		Translate(containerOffset, containerOffset).
		Attr("class", ContainerClass).
		Attr("stroke-linecap", "square").
		Attr("shape-rendering", "crispEdges")

	panels := render.Draw(render.Input{
		Doc:       cfg.Doc,
		Container: container,
		Geometry:  geo,
		Axis:      ax,
		Tasks:     tasks,
		Style:     style,
		Host:      cfg.Host,
	})

	res := &Result{Tasks: tasks, Axis: ax, Geometry: geo, Panels: panels}
	res.Vertical, res.Horizontal = addScrollBars(cfg.Doc, container, geo, panels)

	log.WithFields(log.Fields{
		"id":         cfg.Doc.ID,
		"tasks":      len(tasks),
		"tier":       ax.Tier.String(),
		"vertical":   res.Vertical != nil,
		"horizontal": res.Horizontal != nil,
	}).Debug("rendered chart")

	if cfg.RenderComplete != nil {
		cfg.RenderComplete()
	}
	return res, nil
}

func validate(cfg RenderConfig) error {
	switch {
	case cfg.Doc == nil:
		return errors.New("gantt: no document to draw into")
	case cfg.Host.Measurer == nil, cfg.Host.Styles == nil, cfg.Host.Shapes == nil:
		return errors.New("gantt: host is missing a measurer, style resolver or shape library")
	}
	return nil
}

// addScrollBars links a vertical bar to the label and riser panels when the
// labels clip, and a horizontal bar to the axis and riser panels when the
// axis clips.
func addScrollBars(doc *svg.Document, container *svg.Element, g *layout.Geometry, p render.Panels) (v, h *scroll.Bar) {
	risers := withID(p.Risers, doc.ID+"_risers_scroll")
	if g.Labels.Clipped() {
		v = scroll.New(scroll.Vertical,
			g.Labels.Width+g.Axis.Width, g.Axis.Height,
			g.Labels.Height, g.Labels.OverallHeight,
			withID(p.Labels, doc.ID+"_labels_scroll"), risers)
		v.Attach(doc, container)
	}
	if g.Axis.Clipped() {
		h = scroll.New(scroll.Horizontal,
			g.Labels.Width, g.Axis.Height+g.Labels.Height,
			g.Axis.Width, g.Axis.OverallWidth,
			withID(p.Axis, doc.ID+"_axis_scroll"), risers)
		h.Attach(doc, container)
	}
	return v, h
}

func withID(e *svg.Element, id string) *svg.Element {
	if e == nil {
		return nil
	}
	return e.Attr("id", id)
}
