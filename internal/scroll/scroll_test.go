package scroll

import (
	"strings"
	"testing"

	"gantt2svg/internal/svg"
)

func TestNewHandleLength(t *testing.T) {
	tests := []struct {
		name             string
		visible, overall float64
		ratio, handle    float64
	}{
		{"Half", 200, 400, 0.5, 100},
		{"MinimumHandle", 100, 2000, 0.05, Thickness},
		{"ZeroOverall", 100, 0, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(Vertical, 0, 0, tt.visible, tt.overall)
			if b.Ratio != tt.ratio || b.HandleLength != tt.handle {
				t.Errorf("ratio=%v handle=%v, want %v and %v", b.Ratio, b.HandleLength, tt.ratio, tt.handle)
			}
		})
	}
}

func TestNewIgnoresNilPanels(t *testing.T) {
	var missing *svg.Element
	b := New(Horizontal, 0, 0, 100, 200, svg.NewElement("g"), missing, nil)
	if len(b.panels) != 1 {
		t.Errorf("panels = %d, want 1", len(b.panels))
	}
	b.Drag(10) // must not touch the nil panels
}

func TestDragVertical(t *testing.T) {
	labels := svg.NewElement("g").Translate(0, 0)
	risers := svg.NewElement("g").Translate(7, 0)
	b := New(Vertical, 0, 0, 200, 400, labels, risers)

	b.Drag(30)
	if b.Offset() != 30 {
		t.Errorf("handle offset = %v, want 30", b.Offset())
	}
	for _, p := range []*svg.Element{labels, risers} {
		if _, y := p.Translation(); y != -60 {
			t.Errorf("panel y = %v, want -60", y)
		}
	}
	if x, _ := risers.Translation(); x != 7 {
		t.Errorf("vertical drag moved x to %v", x)
	}

	// The handle stops at visible-handle and panels at visible-overall.
	b.Drag(1000)
	if b.Offset() != 100 {
		t.Errorf("handle offset = %v, want 100", b.Offset())
	}
	if _, y := labels.Translation(); y != -200 {
		t.Errorf("panel y = %v, want -200", y)
	}

	b.Drag(-5000)
	if _, y := labels.Translation(); b.Offset() != 0 || y != 0 {
		t.Errorf("offset=%v y=%v after dragging back, want 0, 0", b.Offset(), y)
	}
}

func TestDragHorizontalRounds(t *testing.T) {
	axis := svg.NewElement("g").Translate(0, 0)
	b := New(Horizontal, 0, 0, 300, 600, axis)

	b.Drag(0.75)
	if x, _ := axis.Translation(); x != -1 {
		t.Errorf("x = %v, want -1.5 rounded half up to -1", x)
	}
	if b.Offset() != 1 {
		t.Errorf("offset = %v, want 1", b.Offset())
	}
}

func TestAttach(t *testing.T) {
	doc, err := svg.New("c", 400, 300)
	if err != nil {
		t.Fatal(err)
	}
	labels := doc.Root().Append("g").Attr("id", "c_labels").Translate(0, 0)
	risers := doc.Root().Append("g").Attr("id", "c_risers").Translate(0, 0)
	b := New(Vertical, 120, 30, 200, 800, labels, risers)
	g := b.Attach(doc, doc.Root())

	if c, _ := g.Get("class"); c != "scroll-v" {
		t.Errorf("class = %q", c)
	}
	if x, y := g.Translation(); x != 120 || y != 30 {
		t.Errorf("bar at (%v, %v)", x, y)
	}
	handles := g.Find(svg.ByClass("scroll-handle"))
	if len(handles) != 1 {
		t.Fatalf("handles = %d", len(handles))
	}
	h := handles[0]
	if w, _ := h.Get("width"); w != "15" {
		t.Errorf("handle width = %q", w)
	}
	if ids, _ := h.Get("data-panels"); ids != "c_labels c_risers" {
		t.Errorf("data-panels = %q", ids)
	}
	if bg := g.Find(svg.ByClass("scroll-background")); len(bg) != 1 {
		t.Errorf("tracks = %d", len(bg))
	}

	if !doc.Drag(h, 99, 20) {
		t.Fatal("handle has no drag handler")
	}
	if _, y := h.Translation(); y != 20 {
		t.Errorf("handle y = %v, want 20", y)
	}
	if _, y := risers.Translation(); y != -80 {
		t.Errorf("risers y = %v, want -80", y)
	}

	out := doc.String()
	if strings.Count(out, "<script") != 1 {
		t.Error("drag script should be embedded once")
	}
	New(Horizontal, 0, 0, 10, 20).Attach(doc, doc.Root())
	if strings.Count(doc.String(), "<script") != 1 {
		t.Error("second bar duplicated the drag script")
	}
}
