package host

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const ellipsis = "..."

// EstimateMeasurer sizes text from the font size alone: each display cell
// is 0.7 x size wide and a line is 1.5 x size tall. East Asian wide runes
// take two cells.
type EstimateMeasurer struct{}

func (EstimateMeasurer) cell(font string) float64 {
	return ParseFont(font).Size * 0.7
}

// Measure returns the estimated box of text set in font.
func (m EstimateMeasurer) Measure(text, font string) Size {
	size := ParseFont(font).Size
	return Size{
		Width:  float64(runewidth.StringWidth(text)) * size * 0.7,
		Height: size * 1.5,
	}
}

// Truncate cuts text to the display cells that fit maxWidth, ending it
// with "..." when anything was dropped. It returns "" when not even the
// ellipsis fits.
func (m EstimateMeasurer) Truncate(text, font string, maxWidth float64) string {
	cells := int(maxWidth / m.cell(font))
	if runewidth.StringWidth(text) <= cells {
		return text
	}
	if cells < len(ellipsis) {
		return ""
	}
	return runewidth.Truncate(text, cells, ellipsis)
}

// BasicfontMeasurer sizes text with the 7x13 bitmap font metrics scaled to
// the requested font size.
type BasicfontMeasurer struct {
	face font.Face
}

// NewBasicfontMeasurer returns a measurer backed by basicfont.Face7x13.
func NewBasicfontMeasurer() *BasicfontMeasurer {
	return &BasicfontMeasurer{face: basicfont.Face7x13}
}

func (m *BasicfontMeasurer) scale(f string) float64 {
	return ParseFont(f).Size / float64(m.face.Metrics().Height.Ceil())
}

func (m *BasicfontMeasurer) advance(text string) float64 {
	var total float64
	for _, r := range text {
		adv, ok := m.face.GlyphAdvance(r)
		if !ok {
			adv, _ = m.face.GlyphAdvance('?')
		}
		total += float64(adv) / 64 * float64(runewidth.RuneWidth(r))
	}
	return total
}

// Measure returns the glyph advance width and line height of text, scaled
// from 13px to the size in font.
func (m *BasicfontMeasurer) Measure(text, f string) Size {
	s := m.scale(f)
	return Size{
		Width:  m.advance(text) * s,
		Height: float64(m.face.Metrics().Height.Ceil()) * s,
	}
}

// Truncate keeps the longest rune prefix that fits maxWidth together with
// "...". Text that already fits is returned unchanged.
func (m *BasicfontMeasurer) Truncate(text, f string, maxWidth float64) string {
	s := m.scale(f)
	if m.advance(text)*s <= maxWidth {
		return text
	}
	budget := maxWidth/s - m.advance(ellipsis)
	if budget < 0 {
		return ""
	}
	runes := []rune(text)
	n := 0
	for used := 0.0; n < len(runes); n++ {
		w := m.advance(string(runes[n]))
		if used+w > budget {
			break
		}
		used += w
	}
	return string(runes[:n]) + ellipsis
}
