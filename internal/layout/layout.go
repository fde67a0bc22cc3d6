// Package layout sizes the label, axis and riser panels of a chart and
// decides which of them clip and scroll.
package layout

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"gantt2svg/internal/axis"
	"gantt2svg/internal/host"
)

// widestTick is measured to size every axis column.
const widestTick = "May"

// Padding holds the fixed pixel allowances of the layout.
type Padding struct {
	Scrollbar  float64 // room kept free for a scrollbar and outer margin
	LabelGap   float64 // added to the label text width to form the label column
	LabelInset float64 // distance from the label column's right edge to the text end
	CellX      float64 // horizontal padding of an axis cell around the widest tick label
	CellY      float64 // vertical padding of a row around the label text height
	AxisRow    float64 // added to each axis row's text height
}

// DefaultPadding returns the standard allowances.
func DefaultPadding() Padding {
	return Padding{Scrollbar: 25, LabelGap: 15, LabelInset: 10, CellX: 12, CellY: 10, AxisRow: 5}
}

// Panel is the geometry of one chart region. Width and Height are the
// visible size; the Overall sizes are the content size before clipping.
type Panel struct {
	X, Y          float64
	Width, Height float64
	OverallWidth  float64
	OverallHeight float64
	ClipID        string // empty when the panel does not clip
}

// Clipped reports whether the panel clips its content.
func (p Panel) Clipped() bool { return p.ClipID != "" }

// Input is everything Compute needs for one pass.
type Input struct {
	ContainerID   string
	Labels        []string
	Axis          *axis.Axis
	LabelFont     string
	AxisFonts     []string // one per axis row; missing rows reuse the last font
	Width, Height float64
	MaxLabelWidth float64 // fraction of Width; 0 disables the clamp
	Padding       Padding // zero value means DefaultPadding
	Measurer      host.Measurer
}

// Geometry is the result of a layout pass.
type Geometry struct {
	Labels Panel
	Axis   Panel
	Risers Panel

	LabelText      []string    // display labels, truncated when the column was clamped
	LabelSize      host.Size   // label text extent (width clamped)
	Truncated      bool        // the label column was clamped
	Cell           host.Size   // axis column width and row height
	AxisLabelSizes []host.Size // measured tick text per axis row
	AxisRowHeights []float64
	Padding        Padding
}

// Compute lays out the chart and assigns the axis scale its pixel range.
// A missing or empty axis is an axis.ErrSpan failure.
func Compute(in Input) (*Geometry, error) {
	if in.Axis == nil || len(in.Axis.Rows) == 0 || in.Axis.Count == 0 {
		return nil, fmt.Errorf("layout: %w", axis.ErrSpan)
	}
	if in.Measurer == nil {
		return nil, fmt.Errorf("layout: no text measurer")
	}
	pad := in.Padding
	if pad == (Padding{}) {
		pad = DefaultPadding()
	}
	g := &Geometry{Padding: pad}

	g.LabelText = append([]string(nil), in.Labels...)
	for _, l := range in.Labels {
		g.LabelSize.Width = math.Max(g.LabelSize.Width, in.Measurer.Measure(l, in.LabelFont).Width)
	}
	g.LabelSize.Height = in.Measurer.Measure("W", in.LabelFont).Height

	if limit := in.Width * in.MaxLabelWidth; in.MaxLabelWidth > 0 && g.LabelSize.Width > limit {
		g.LabelSize.Width = limit
		g.Truncated = true
		for i, l := range g.LabelText {
			g.LabelText[i] = in.Measurer.Truncate(l, in.LabelFont, limit)
		}
	}

	var tickWidth float64
	g.AxisLabelSizes = make([]host.Size, len(in.Axis.Rows))
	g.AxisRowHeights = make([]float64, len(in.Axis.Rows))
	for i := range in.Axis.Rows {
		s := in.Measurer.Measure(widestTick, rowFont(in.AxisFonts, i))
		g.AxisLabelSizes[i] = s
		g.AxisRowHeights[i] = s.Height + pad.AxisRow
		tickWidth = math.Max(tickWidth, s.Width)
	}
	g.Cell = host.Size{
		Width:  round(tickWidth + pad.CellX),
		Height: round(g.LabelSize.Height + pad.CellY),
	}

	var axisHeight float64
	for _, h := range g.AxisRowHeights {
		axisHeight += h
	}
	g.Axis = Panel{
		Width:        g.Cell.Width * float64(in.Axis.Count),
		OverallWidth: g.Cell.Width * float64(in.Axis.Count),
		Height:       axisHeight,
	}
	g.Axis.OverallHeight = g.Axis.Height
	in.Axis.Scale.SetRange(0, g.Axis.OverallWidth)

	g.Labels = Panel{
		Y:             axisHeight,
		Width:         g.LabelSize.Width + pad.LabelGap,
		Height:        g.Cell.Height * float64(len(in.Labels)),
		OverallHeight: g.Cell.Height * float64(len(in.Labels)),
	}
	g.Labels.OverallWidth = g.Labels.Width
	g.Axis.X = g.Labels.Width

	if g.Axis.Height+g.Labels.Height > in.Height-pad.Scrollbar {
		g.Labels.Height = math.Max(0, in.Height-g.Axis.Height-pad.Scrollbar)
		g.Labels.ClipID = in.ContainerID + "_label_clip"
	}
	if g.Axis.Width+g.Labels.Width+pad.Scrollbar > in.Width {
		g.Axis.Width = math.Max(0, in.Width-g.Labels.Width-pad.Scrollbar)
		g.Axis.ClipID = in.ContainerID + "_axis_clip"
	}

	g.Risers = Panel{
		X:             g.Labels.Width,
		Y:             g.Axis.Height,
		Width:         g.Axis.Width,
		Height:        g.Labels.Height,
		OverallWidth:  g.Axis.OverallWidth,
		OverallHeight: g.Labels.OverallHeight,
	}
	if g.Labels.Clipped() || g.Axis.Clipped() {
		g.Risers.ClipID = in.ContainerID + "_riser_clip"
	}

	log.WithFields(log.Fields{
		"cell_width":  g.Cell.Width,
		"cell_height": g.Cell.Height,
		"truncated":   g.Truncated,
		"clip_labels": g.Labels.Clipped(),
		"clip_axis":   g.Axis.Clipped(),
	}).Debug("computed layout")

	return g, nil
}

func rowFont(fonts []string, i int) string {
	switch {
	case len(fonts) == 0:
		return ""
	case i < len(fonts):
		return fonts[i]
	}
	return fonts[len(fonts)-1]
}

// round rounds half up, matching pixel snapping in browsers.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
