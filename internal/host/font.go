package host

import (
	"strconv"
	"strings"
)

const defaultFontSize = 12

// Font is the part of a CSS font shorthand the measurers need.
type Font struct {
	Size float64 // pixels
}

// ParseFont reads the size out of a CSS font shorthand such as
// "bold 12pt helvetica". Sizes in pt and em are converted to pixels; a
// missing or unreadable size falls back to 12px.
func ParseFont(s string) Font {
	for _, tok := range strings.Fields(s) {
		if size, ok := parseSize(tok); ok {
			return Font{Size: size}
		}
	}
	return Font{Size: defaultFontSize}
}

func parseSize(tok string) (float64, bool) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	var mul, div float64 = 1, 1
	switch {
	case strings.HasSuffix(tok, "px"):
	case strings.HasSuffix(tok, "pt"):
		mul, div = 4, 3
	case strings.HasSuffix(tok, "em"):
		mul = 16
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(tok[:len(tok)-2], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * mul / div, true
}
