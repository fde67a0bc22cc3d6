// Package scroll draws scroll bars for clipped panels and keeps the linked
// panels' pan offsets in step with the handle.
package scroll

import (
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"gantt2svg/internal/svg"
)

// Thickness is the scroll bar's cross size and the minimum handle length.
const Thickness = 15

const (
	trackColor  = "rgb(240,240,240)"
	handleColor = "rgb(180,180,180)"
)

// Orientation is the scrolling direction.
type Orientation string

const (
	Vertical   Orientation = "v"
	Horizontal Orientation = "h"
)

// Pannable is content moved by a scroll bar.
type Pannable interface {
	Translation() (x, y float64)
	Translate(x, y float64) *svg.Element
}

// Bar is one scroll bar and the panels it drives.
type Bar struct {
	Orientation  Orientation
	X, Y         float64
	Visible      float64
	Overall      float64
	Ratio        float64
	HandleLength float64

	panels []Pannable
	offset float64
	handle *svg.Element
}

// New returns a bar at (x, y) for content of overall length shown in
// visible pixels. Nil panels are ignored.
func New(o Orientation, x, y, visible, overall float64, panels ...Pannable) *Bar {
	b := &Bar{Orientation: o, X: x, Y: y, Visible: visible, Overall: overall, Ratio: 1}
	if overall > 0 {
		b.Ratio = visible / overall
	}
	b.HandleLength = math.Max(visible*b.Ratio, Thickness)
	for _, p := range panels {
		if e, ok := p.(*svg.Element); p == nil || (ok && e == nil) {
			continue
		}
		b.panels = append(b.panels, p)
	}
	return b
}

// Offset returns the handle position along the track.
func (b *Bar) Offset() float64 { return b.offset }

// Drag moves the handle by delta pixels within the track and every linked
// panel by -delta/Ratio within [Visible-Overall, 0]. Positions are rounded
// half up.
func (b *Bar) Drag(delta float64) {
	b.offset = clampRound(b.offset+delta, 0, b.Visible-b.HandleLength)
	if b.handle != nil {
		b.handle.Translate(b.along(b.offset))
	}
	if b.Ratio == 0 {
		return
	}
	for _, p := range b.panels {
		x, y := p.Translation()
		cur := y
		if b.Orientation == Horizontal {
			cur = x
		}
		next := clampRound(cur-delta/b.Ratio, b.Visible-b.Overall, 0)
		if b.Orientation == Horizontal {
			p.Translate(next, y)
		} else {
			p.Translate(x, next)
		}
	}
	log.WithFields(log.Fields{"orientation": string(b.Orientation), "delta": delta, "offset": b.offset}).Trace("scrolled")
}

// along maps a position on the track to an x, y translation.
func (b *Bar) along(v float64) (float64, float64) {
	if b.Orientation == Horizontal {
		return v, 0
	}
	return 0, v
}

func (b *Bar) size(length float64) (float64, float64) {
	if b.Orientation == Horizontal {
		return length, Thickness
	}
	return Thickness, length
}

// Attach draws the track and handle under parent and registers the
// handle's drag gesture with doc.
func (b *Bar) Attach(doc *svg.Document, parent *svg.Element) *svg.Element {
	g := parent.Append("g").
		Attr("class", "scroll-"+string(b.Orientation)).
		Translate(b.X, b.Y)

	w, h := b.size(b.Visible)
	g.Append("rect").
		Attr("class", "scroll-background").
		Attr("x", 0).
		Attr("y", 0).
		Attr("width", w).
		Attr("height", h).
		Attr("fill", trackColor)

	w, h = b.size(b.HandleLength)
	b.handle = g.Append("rect").
		Attr("class", "scroll-handle").
		Attr("x", 0).
		Attr("y", 0).
		Translate(b.along(b.offset)).
		Attr("width", w).
		Attr("height", h).
		Attr("fill", handleColor).
		Attr("cursor", "pointer").
		Attr("data-drag", string(b.Orientation)).
		Attr("data-ratio", b.Ratio).
		Attr("data-min", b.Visible-b.Overall).
		Attr("data-max", b.Visible-b.HandleLength).
		Attr("data-panels", b.panelIDs())

	doc.OnDrag(b.handle, func(dx, dy float64) {
		if b.Orientation == Horizontal {
			b.Drag(dx)
		} else {
			b.Drag(dy)
		}
	})
	doc.Script("scroll", dragScript)
	return g
}

func (b *Bar) panelIDs() string {
	var ids []string
	for _, p := range b.panels {
		if e, ok := p.(interface{ Get(string) (string, bool) }); ok {
			if id, ok := e.Get("id"); ok {
				ids = append(ids, id)
			}
		}
	}
	return strings.Join(ids, " ")
}

func clampRound(v, lo, hi float64) float64 {
	v = math.Min(math.Max(v, lo), hi)
	return math.Floor(v + 0.5)
}

// dragScript replays Drag in the browser using the handle's data
// attributes.
const dragScript = `(function () {
  function move(el, horizontal, dt, lo, hi) {
    var m = /translate\(\s*([-\d.e]+)[ ,]+([-\d.e]+)\s*\)/.exec(el.getAttribute("transform") || "");
    var x = m ? +m[1] : 0, y = m ? +m[2] : 0;
    if (horizontal) {
      x = Math.round(Math.min(Math.max(x + dt, lo), hi));
    } else {
      y = Math.round(Math.min(Math.max(y + dt, lo), hi));
    }
    el.setAttribute("transform", "translate(" + x + ", " + y + ")");
  }
  var handles = document.querySelectorAll("[data-drag]");
  Array.prototype.forEach.call(handles, function (h) {
    var horizontal = h.getAttribute("data-drag") === "h";
    var ratio = +h.getAttribute("data-ratio");
    var lo = +h.getAttribute("data-min"), hi = +h.getAttribute("data-max");
    var panels = (h.getAttribute("data-panels") || "").split(" ").map(function (id) {
      return document.getElementById(id);
    }).filter(function (el) { return el; });
    var last = null;
    h.addEventListener("pointerdown", function (e) {
      last = horizontal ? e.clientX : e.clientY;
      h.setPointerCapture(e.pointerId);
    });
    h.addEventListener("pointerup", function () { last = null; });
    h.addEventListener("pointermove", function (e) {
      if (last === null) {
        return;
      }
      var p = horizontal ? e.clientX : e.clientY, dt = p - last;
      last = p;
      move(h, horizontal, dt, 0, hi);
      if (ratio > 0) {
        panels.forEach(function (el) { move(el, horizontal, -dt / ratio, lo, 0); });
      }
    });
  });
})();`
