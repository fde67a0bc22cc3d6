// Package host supplies the capabilities the chart core calls out to
// rather than owns: text measurement and truncation, per-series style
// lookup, element class naming, color visibility and named marker paths.
package host

import (
	"fmt"
	"strings"

	"gantt2svg/internal/config"
)

// NoGroup asks a StyleResolver for the series-wide value.
const NoGroup = -1

// Size is a measured text extent in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Measurer measures and shortens text set in a CSS font.
type Measurer interface {
	Measure(text, font string) Size
	Truncate(text, font string, maxWidth float64) string
}

// StyleResolver resolves style properties by series and group index.
// path is a dotted property name such as "color" or "marker.border.width".
// Unknown paths resolve to nil.
type StyleResolver interface {
	SeriesProperty(series, group int, path string) any
	ClassName(kind string, series, group int, mark string) string
}

// ShapeLibrary returns the SVG path of a named marker centered on the
// origin. stroke reports whether the path is drawn as an outline.
type ShapeLibrary interface {
	ShapePath(shape string, size float64) (path string, stroke bool)
}

// Host bundles the capabilities one render uses.
type Host struct {
	Measurer Measurer
	Styles   StyleResolver
	Shapes   ShapeLibrary
}

// New builds the default host for cfg.
func New(cfg config.Config) (Host, error) {
	var m Measurer
	switch strings.ToLower(cfg.Measure) {
	case "", "estimate":
		m = EstimateMeasurer{}
	case "basicfont":
		m = NewBasicfontMeasurer()
	default:
		return Host{}, fmt.Errorf("unknown measurer %q (want estimate or basicfont)", cfg.Measure)
	}
	return Host{
		Measurer: m,
		Styles:   NewSeriesStyles(cfg.Series),
		Shapes:   PathShapes{},
	}, nil
}

// String returns v when it is a string and "" otherwise.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Float returns v as a float64 when it is numeric and 0 otherwise.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Index reports whether v is a numeric series index and returns it.
func Index(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
