package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetOutputFilename(t *testing.T) {
	tests := []struct {
		input, output, want string
	}{
		{"plan.csv", "", "plan.svg"},
		{"data/plan.v2.json", "", "plan.v2.svg"},
		{"plan.csv", "out.svg", "out.svg"},
		{"plan.csv", "-", "-"},
		{"", "", "gantt.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.input+"->"+tt.want, func(t *testing.T) {
			if got := getOutputFilename(tt.input, tt.output); got != tt.want {
				t.Errorf("getOutputFilename(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.want)
			}
		})
	}
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func notTerminal() bool { return false }

func TestRunRenderFile(t *testing.T) {
	in := writeInput(t, "plan.csv", "label,start,stop\nDesign,2024-01-01,2024-02-15\nBuild,2024-02-01,2024-04-30\n")
	out := filepath.Join(t.TempDir(), "plan.svg")
	var stdout, msg bytes.Buffer

	err := runRender(context.Background(), renderOptions{input: in, output: out, sort: "label"}, &stdout, &msg, notTerminal)
	if err != nil {
		t.Fatalf("runRender: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, ">Design</text>") {
		t.Errorf("unexpected output:\n%.400s", svg)
	}
	if !strings.Contains(msg.String(), "Gantt SVG generated successfully: "+out) {
		t.Errorf("message = %q", msg.String())
	}
	if stdout.Len() != 0 {
		t.Error("file output also wrote to stdout")
	}
}

func TestRunRenderStdout(t *testing.T) {
	in := writeInput(t, "plan.json", `[{"label":"A","start":"2024-01-01","stop":"2024-03-01"}]`)
	var stdout, msg bytes.Buffer
	if err := runRender(context.Background(), renderOptions{input: in, output: "-"}, &stdout, &msg, notTerminal); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if !strings.Contains(stdout.String(), "</svg>") {
		t.Errorf("stdout = %.200q", stdout.String())
	}

	err := runRender(context.Background(), renderOptions{input: in, output: "-"}, &stdout, &msg, func() bool { return true })
	if err == nil || !strings.Contains(err.Error(), "terminal") {
		t.Errorf("terminal stdout: err = %v", err)
	}
}

func TestRunRenderScroll(t *testing.T) {
	var b strings.Builder
	b.WriteString("label,start,stop\n")
	for i := 0; i < 80; i++ {
		b.WriteString("task " + string(rune('a'+i%26)) + string(rune('a'+i/26)) + ",2024-01-01,2024-03-01\n")
	}
	in := writeInput(t, "many.csv", b.String())
	var stdout, msg bytes.Buffer
	opts := renderOptions{input: in, output: "-", width: 600, height: 300, scrollX: 20, scrollY: 20}
	if err := runRender(context.Background(), opts, &stdout, &msg, notTerminal); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	out := stdout.String()
	for _, class := range []string{`class="scroll-v"`, `class="scroll-h"`} {
		if !strings.Contains(out, class) {
			t.Errorf("missing %s", class)
		}
	}
	if strings.Count(out, `class="scroll-handle"`) != 2 || !strings.Contains(out, "translate(0, 20)") || !strings.Contains(out, "translate(20, 0)") {
		t.Error("handles were not moved by the initial scroll")
	}
}

func TestRunRenderNoData(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "placeholder.svg")
	var stdout, msg bytes.Buffer
	if err := runRender(context.Background(), renderOptions{noData: true, output: out}, &stdout, &msg, notTerminal); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Long Task 2") {
		t.Error("placeholder tasks missing")
	}
}

func TestRunRenderErrors(t *testing.T) {
	missingCfg := filepath.Join(t.TempDir(), "nope.yaml")
	badSpan := writeInput(t, "bad.csv", "label,start\nA,someday\n")
	tests := []struct {
		name string
		opts renderOptions
		want string
	}{
		{"NoInput", renderOptions{}, "input file is required"},
		{"MissingInput", renderOptions{input: "/does/not/exist.csv"}, "error loading tasks"},
		{"MissingConfig", renderOptions{input: badSpan, config: missingCfg}, "error loading configuration"},
		{"NoSpan", renderOptions{input: badSpan, output: "-"}, "error calculating time span"},
		{"BadSort", renderOptions{input: badSpan, sort: "size"}, "unknown sort mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, msg bytes.Buffer
			err := runRender(context.Background(), tt.opts, &stdout, &msg, notTerminal)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
