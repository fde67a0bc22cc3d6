package host

import (
	"fmt"
	"strings"

	"gantt2svg/internal/config"
)

// SeriesStyles resolves style properties from a fixed palette. Series
// indices wrap around the palette; groups share their series' values.
type SeriesStyles struct {
	palette []config.SeriesStyle
}

// NewSeriesStyles returns a resolver over palette. An empty palette
// resolves every property to nil.
func NewSeriesStyles(palette []config.SeriesStyle) *SeriesStyles {
	return &SeriesStyles{palette: palette}
}

// SeriesProperty returns the value at a dotted path such as "marker.size"
// for the palette entry of series, or nil for an unknown path.
func (s *SeriesStyles) SeriesProperty(series, group int, path string) any {
	if len(s.palette) == 0 {
		return nil
	}
	if series < 0 {
		series = 0
	}
	return seriesProperty(s.palette[series%len(s.palette)], path)
}

// ClassName encodes kind, series, group and mark into a class name used to
// look up per-series CSS rules.
func (s *SeriesStyles) ClassName(kind string, series, group int, mark string) string {
	return fmt.Sprintf("%s!s%d!g%d!m%s!", kind, series, group, mark)
}

func seriesProperty(st config.SeriesStyle, path string) any {
	switch strings.ToLower(path) {
	case "color":
		return st.Color
	case "border.color":
		return st.Border.Color
	case "border.width":
		return st.Border.Width
	case "risershape":
		return st.RiserShape
	case "marker.shape":
		return st.Marker.Shape
	case "marker.size":
		return st.Marker.Size
	case "marker.border.color":
		return st.Marker.Border.Color
	case "marker.border.width":
		return st.Marker.Border.Width
	case "tooltip":
		return st.Tooltip
	}
	return nil
}

type seriesOverride struct {
	StyleResolver
	series int
	style  config.SeriesStyle
}

// WithSeries returns a resolver that answers for one series from st and
// delegates everything else to base.
func WithSeries(base StyleResolver, series int, st config.SeriesStyle) StyleResolver {
	return &seriesOverride{StyleResolver: base, series: series, style: st}
}

func (o *seriesOverride) SeriesProperty(series, group int, path string) any {
	if series == o.series {
		return seriesProperty(o.style, path)
	}
	return o.StyleResolver.SeriesProperty(series, group, path)
}
