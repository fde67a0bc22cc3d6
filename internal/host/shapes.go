package host

import (
	"fmt"
	"math"
	"strings"

	"gantt2svg/internal/svg"
)

// PathShapes draws the named marker shapes as SVG paths of radius size.
// Unknown names fall back to a circle.
type PathShapes struct{}

// ShapePath returns the path data for shape centred on the origin and
// whether it must be stroked rather than filled.
func (PathShapes) ShapePath(shape string, size float64) (string, bool) {
	r := size
	n := svg.Num
	switch strings.ToLower(shape) {
	case "square":
		return fmt.Sprintf("M%s %sH%sV%sH%sZ", n(-r), n(-r), n(r), n(r), n(-r)), false
	case "diamond":
		return fmt.Sprintf("M0 %sL%s 0L0 %sL%s 0Z", n(-r), n(r), n(r), n(-r)), false
	case "triangle":
		x, y := r*math.Sqrt(3)/2, r/2
		return fmt.Sprintf("M0 %sL%s %sL%s %sZ", n(-r), n(x), n(y), n(-x), n(y)), false
	case "cross":
		return fmt.Sprintf("M%s %sL%s %sM%s %sL%s %s", n(-r), n(-r), n(r), n(r), n(r), n(-r), n(-r), n(r)), true
	case "plus":
		return fmt.Sprintf("M0 %sV%sM%s 0H%s", n(-r), n(r), n(-r), n(r)), true
	case "tick":
		return fmt.Sprintf("M0 0V%s", n(-r)), true
	case "bar":
		return fmt.Sprintf("M%s 0H%s", n(-r), n(r)), true
	}
	return fmt.Sprintf("M0 %sA%s %s 0 1 1 0 %sA%s %s 0 1 1 0 %sZ", n(-r), n(r), n(r), n(r), n(r), n(r), n(-r)), false
}
