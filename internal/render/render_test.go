package render

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"gantt2svg/internal/axis"
	"gantt2svg/internal/config"
	"gantt2svg/internal/host"
	"gantt2svg/internal/layout"
	"gantt2svg/internal/svg"
	"gantt2svg/internal/task"
)

type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text, font string) host.Size {
	return host.Size{Width: float64(len([]rune(text))) * 10, Height: 10}
}

func (fixedMeasurer) Truncate(text, font string, maxWidth float64) string { return text }

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

// frame pins the axis to 2024-01-01..2024-01-11 (ten day cells).
var frame = task.Task{Label: "frame", Risers: []task.Riser{{Start: day(1), Stop: day(11), GroupID: 99}}}

type fixture struct {
	doc    *svg.Document
	axis   *axis.Axis
	geo    *layout.Geometry
	panels Panels
	style  config.Style
}

func draw(t *testing.T, width, height float64, tasks ...task.Task) fixture {
	t.Helper()
	tasks = append([]task.Task{frame}, tasks...)
	ax, err := axis.Resolve(tasks)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	labels := make([]string, len(tasks))
	for i, tk := range tasks {
		labels[i] = tk.Label
	}
	geo, err := layout.Compute(layout.Input{
		ContainerID: "c",
		Labels:      labels,
		Axis:        ax,
		Width:       width,
		Height:      height,
		Measurer:    fixedMeasurer{},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	doc, err := svg.New("c", width, height)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	panels := Draw(Input{
		Doc:       doc,
		Container: doc.Root().Append("g"),
		Geometry:  geo,
		Axis:      ax,
		Tasks:     tasks,
		Style:     cfg.Properties.Style,
		Host:      host.Host{Measurer: fixedMeasurer{}, Styles: host.NewSeriesStyles(cfg.Series), Shapes: host.PathShapes{}},
	})
	return fixture{doc: doc, axis: ax, geo: geo, panels: panels, style: cfg.Properties.Style}
}

func attr(t *testing.T, e *svg.Element, key string) string {
	t.Helper()
	v, ok := e.Get(key)
	if !ok {
		t.Fatalf("<%s> has no %s attribute", e.Name, key)
	}
	return v
}

func num(t *testing.T, e *svg.Element, key string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(attr(t, e, key), 64)
	if err != nil {
		t.Fatalf("%s=%q: %v", key, attr(t, e, key), err)
	}
	return v
}

func near(a, b float64) bool { return math.Abs(a-b) < 0.001 }

func TestDrawNormalBar(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{Label: "a", Risers: []task.Riser{{Start: day(2), Stop: day(4), GroupID: 1}}})
	bars := f.panels.Risers.Find(svg.ByClass("riser!s0!g1!mbar!"))
	if len(bars) != 1 || bars[0].Name != "rect" {
		t.Fatalf("bars = %v", bars)
	}
	bar := bars[0]
	if got := attr(t, bar, "fill"); got != "#4285f4" {
		t.Errorf("fill = %q, want series color", got)
	}
	if got, want := num(t, bar, "x"), f.axis.Scale.Map(day(2)); !near(got, want) {
		t.Errorf("x = %v, want %v", got, want)
	}
	if got, want := num(t, bar, "width"), f.axis.Scale.Map(day(4))-f.axis.Scale.Map(day(2)); !near(got, want) {
		t.Errorf("width = %v, want %v", got, want)
	}
}

func TestDrawInvertedBar(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{Label: "inv", Risers: []task.Riser{{Start: day(5), Stop: day(2), GroupID: 1}}})
	bars := f.panels.Risers.Find(svg.ByClass("riser!s0!g1!mbar!"))
	if len(bars) != 1 {
		t.Fatalf("want one bar, got %d", len(bars))
	}
	if got := attr(t, bars[0], "fill"); got != f.style.Risers.Data.InvertedStartStop.Color {
		t.Errorf("fill = %q, want inverted color", got)
	}
	if got, want := num(t, bars[0], "x"), f.axis.Scale.Map(day(2)); !near(got, want) {
		t.Errorf("x = %v, want the earlier instant %v", got, want)
	}
	if num(t, bars[0], "width") <= 2 {
		t.Error("inverted bar should span both instants")
	}
}

func TestDrawOnlyStartMarker(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{Label: "open", Risers: []task.Riser{{Start: day(3), GroupID: 1}}})
	if bars := f.panels.Risers.Find(svg.ByClass("riser!s0!g1!mbar!")); len(bars) != 0 {
		t.Fatalf("start-only riser drew %d bars", len(bars))
	}
	markers := f.panels.Risers.Find(svg.ByClass("riser!s0!g1!mriser!"))
	if len(markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(markers))
	}
	m := markers[0]
	if m.Name != "circle" {
		t.Errorf("marker = <%s>, want the configured circle", m.Name)
	}
	x, y := m.Translation()
	if x != f.axis.Scale.Map(day(3)) || y != f.geo.Cell.Height/2 {
		t.Errorf("marker at (%v, %v), want (%v, %v)", x, y, f.axis.Scale.Map(day(3)), f.geo.Cell.Height/2)
	}
}

func TestDrawOnlyStopTick(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{Label: "closed", Risers: []task.Riser{{Stop: day(6), GroupID: 1}}})
	markers := f.panels.Risers.Find(svg.ByClass("riser!s0!g1!mriser!"))
	if len(markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(markers))
	}
	m := markers[0]
	if got := attr(t, m, "d"); got != "M0 -7.5v15" {
		t.Errorf("tick path = %q", got)
	}
	if attr(t, m, "fill") != "none" || attr(t, m, "stroke") != f.style.Risers.Data.OnlyStop.Color {
		t.Errorf("tick should be stroked in the marker color")
	}
	if attr(t, m, "shape-rendering") != "crispEdges" || attr(t, m, "stroke-width") != "2" {
		t.Errorf("tick rendering = %q width %q", attr(t, m, "shape-rendering"), attr(t, m, "stroke-width"))
	}
}

func TestDrawExplicitShapes(t *testing.T) {
	f := draw(t, 2000, 1000,
		task.Task{Label: "l", Risers: []task.Riser{{Start: day(2), Stop: day(3), GroupID: 1, Shape: "LINE"}}},
		task.Task{Label: "s", Risers: []task.Riser{{Stop: day(2), GroupID: 2, Shape: "dollar"}}},
		task.Task{Label: "x", Risers: []task.Riser{{Start: day(2), GroupID: 3, Shape: "cross"}}},
	)
	if got := f.panels.Risers.Find(svg.ByClass("riser!s0!g1!mbar!")); len(got) != 1 || got[0].Name != "line" {
		t.Errorf("line riser = %v", got)
	}
	dollar := f.panels.Risers.Find(svg.ByClass("riser!s0!g2!mriser!"))
	if len(dollar) != 1 || !strings.HasPrefix(attr(t, dollar[0], "d"), "M0 -6V6") {
		t.Errorf("dollar glyph = %v", dollar)
	}
	cross := f.panels.Risers.Find(svg.ByClass("riser!s0!g3!mriser!"))
	if len(cross) != 1 || attr(t, cross[0], "fill") != "none" {
		t.Errorf("cross glyph should be stroke only")
	}
}

func TestDrawEqualEndpoints(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{Label: "z", Risers: []task.Riser{{Start: day(4), Stop: day(4), GroupID: 1}}})
	bars := f.panels.Risers.Find(svg.ByClass("riser!s0!g1!mbar!"))
	if len(bars) != 1 || num(t, bars[0], "width") != 2 {
		t.Errorf("zero-length riser should draw a 2px bar, got %v", bars)
	}
}

func TestDrawSkipsAbsent(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{
		Label:      "empty",
		Risers:     []task.Riser{{GroupID: 1}},
		Milestones: []task.Milestone{{GroupID: 1}},
	})
	if got := f.panels.Risers.Find(func(e *svg.Element) bool {
		c, _ := e.Get("class")
		return strings.Contains(c, "!g1!")
	}); len(got) != 0 {
		t.Errorf("absent riser/milestone drew %d elements", len(got))
	}
}

func TestDrawMilestones(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{
		Label:      "m",
		Milestones: []task.Milestone{{Time: day(3), GroupID: 1}, {Time: day(7), GroupID: 1}},
	})
	ms := f.panels.Risers.Find(svg.ByClass("marker!s0!g1!mmarker!"))
	if len(ms) != 2 {
		t.Fatalf("milestones = %d, want 2", len(ms))
	}
	// Palette slot 1 is a diamond, slot 2 a triangle.
	if got := attr(t, ms[0], "d"); got != "M0 -10L10 0L0 10L-10 0Z" {
		t.Errorf("first milestone path = %q", got)
	}
	if attr(t, ms[1], "fill") != "#0f9d58" {
		t.Errorf("second milestone fill = %q", attr(t, ms[1], "fill"))
	}
	if x, _ := ms[1].Translation(); x != f.axis.Scale.Map(day(7)) {
		t.Errorf("milestone x = %v", x)
	}
}

func TestDrawLabelsAndAxis(t *testing.T) {
	f := draw(t, 2000, 1000, task.Task{Label: "a"}, task.Task{Label: "b"})
	texts := f.panels.Labels.Find(svg.ByName("text"))
	if len(texts) != 3 || texts[1].Text() != "a" {
		t.Fatalf("labels = %d", len(texts))
	}
	if got := attr(t, texts[0], "text-anchor"); got != "end" {
		t.Errorf("label anchor = %q", got)
	}
	ticks := f.panels.Axis.Find(svg.ByClass("month_text"))
	if len(ticks) != f.axis.Count || ticks[0].Text() != "1" {
		t.Errorf("axis ticks = %d, want %d", len(ticks), f.axis.Count)
	}
	stripes := f.panels.Risers.Find(func(e *svg.Element) bool {
		v, _ := e.Get("fill")
		return e.Name == "rect" && v == f.style.Risers.AltRowFill
	})
	if len(stripes) != 1 {
		t.Errorf("alternate row stripes = %d, want 1", len(stripes))
	}
}

func TestDrawClipRegions(t *testing.T) {
	many := make([]task.Task, 60)
	for i := range many {
		many[i] = task.Task{Label: "t" + strconv.Itoa(i)}
	}
	f := draw(t, 200, 300, many...)
	out := f.doc.String()
	for _, id := range []string{"c_label_clip", "c_axis_clip", "c_riser_clip"} {
		if !strings.Contains(out, `<clipPath id="`+id+`">`) {
			t.Errorf("missing clip path %s", id)
		}
	}
	if !strings.Contains(out, `clip-path="url(#c_riser_clip)"`) {
		t.Error("riser region does not reference its clip path")
	}
}
