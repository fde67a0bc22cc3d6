package host

import (
	"strings"

	"github.com/mazznoff/csscolorparser"

	"gantt2svg/internal/config"
)

// IsVisible reports whether color paints anything. Empty, "none" and any
// CSS color with zero alpha are invisible. Paints the parser does not know,
// such as url(#gradient), count as visible.
func IsVisible(color string) bool {
	c := strings.TrimSpace(color)
	if c == "" || strings.EqualFold(c, "none") {
		return false
	}
	parsed, err := csscolorparser.Parse(c)
	if err != nil {
		return true
	}
	return parsed.A > 0
}

// IsLineVisible reports whether l has positive width and a visible color.
func IsLineVisible(l config.Line) bool {
	return l.Width > 0 && IsVisible(l.Color)
}
