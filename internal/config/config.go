// Package config holds the chart configuration: the property tree handed
// to a render (sort mode, layout limits, style), the canvas size, the
// default series palette used for style lookups, and the CSV column
// mapping used when loading task files.
//
// Files ending in .toml are decoded with BurntSushi/toml; anything else is
// treated as YAML. Values present in the file override Default(); absent
// values keep their defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Line describes a stroke. A line is drawn only when Width > 0 and Color is
// a visible color.
type Line struct {
	Color string  `yaml:"color" toml:"color"` // Stroke color (CSS color, "none"/"transparent" hide it)
	Width float64 `yaml:"width" toml:"width"` // Stroke width in pixels
}

// Marker is a glyph shape and size.
type Marker struct {
	Shape string  `yaml:"shape" toml:"shape"` // "circle", "dollar", a named shape ("diamond", "square", ...) or empty for a tick mark
	Size  float64 `yaml:"size" toml:"size"`   // Glyph size in pixels (0 = shape default)
}

// MarkerStyle styles the glyph drawn for a riser that has only one endpoint.
type MarkerStyle struct {
	Color  string `yaml:"color" toml:"color"`
	Border Line   `yaml:"border" toml:"border"`
	Marker Marker `yaml:"marker" toml:"marker"`
}

// LabelStyle styles the label column.
type LabelStyle struct {
	Font     string `yaml:"font" toml:"font"`         // CSS font shorthand, e.g. "10pt sans-serif"
	Color    string `yaml:"color" toml:"color"`       // Label text color
	Fill     string `yaml:"fill" toml:"fill"`         // Panel background
	Border   Line   `yaml:"border" toml:"border"`     // Panel border
	Dividers Line   `yaml:"dividers" toml:"dividers"` // Lines between label rows
}

// AxisLabel styles the text of one axis row.
type AxisLabel struct {
	Font  string `yaml:"font" toml:"font"`
	Color string `yaml:"color" toml:"color"`
}

// AxisRow styles one row of the time axis.
type AxisRow struct {
	Label AxisLabel `yaml:"label" toml:"label"`
}

// AxisStyle styles the time axis panel. Rows[0] is the top (coarsest) row;
// rows beyond the configured ones reuse the last entry.
type AxisStyle struct {
	Fill     string    `yaml:"fill" toml:"fill"`
	Border   Line      `yaml:"border" toml:"border"`
	Dividers Line      `yaml:"dividers" toml:"dividers"`
	Rows     []AxisRow `yaml:"rows" toml:"rows"`
}

// Row returns the style of axis row i.
func (a AxisStyle) Row(i int) AxisRow {
	switch {
	case len(a.Rows) == 0:
		return AxisRow{}
	case i < len(a.Rows):
		return a.Rows[i]
	}
	return a.Rows[len(a.Rows)-1]
}

// Inverted styles a riser whose stop precedes its start.
type Inverted struct {
	Color string `yaml:"color" toml:"color"`
}

// RiserData groups the styles that depend on a riser's data.
type RiserData struct {
	InvertedStartStop Inverted    `yaml:"inverted_start_stop" toml:"inverted_start_stop"`
	OnlyStart         MarkerStyle `yaml:"only_start" toml:"only_start"`
	OnlyStop          MarkerStyle `yaml:"only_stop" toml:"only_stop"`
}

// RiserStyle styles the riser body panel.
type RiserStyle struct {
	Fill       string    `yaml:"fill" toml:"fill"`
	Border     Line      `yaml:"border" toml:"border"`
	Dividers   Line      `yaml:"dividers" toml:"dividers"`
	AltRowFill string    `yaml:"alt_row_fill" toml:"alt_row_fill"` // Fill for odd rows; empty disables striping
	Inset      float64   `yaml:"inset" toml:"inset"`               // Fraction of the row height left empty around a bar (0-1)
	Data       RiserData `yaml:"data" toml:"data"`
}

// Style is the full style tree.
type Style struct {
	Labels   LabelStyle `yaml:"labels" toml:"labels"`
	TimeAxis AxisStyle  `yaml:"time_axis" toml:"time_axis"`
	Risers   RiserStyle `yaml:"risers" toml:"risers"`
}

// Layout bounds the label column.
type Layout struct {
	MaxLabelWidth float64 `yaml:"max_label_width" toml:"max_label_width"` // Fraction of the canvas width the label column may take
}

// Properties is the property tree passed to every render.
type Properties struct {
	Sort   string `yaml:"sort" toml:"sort"` // "label", "start_time", "stop_time" or empty
	Layout Layout `yaml:"layout" toml:"layout"`
	Style  Style  `yaml:"style" toml:"style"`
}

// SeriesMarker is the marker part of a series style slot.
type SeriesMarker struct {
	Shape  string  `yaml:"shape" toml:"shape"`
	Size   float64 `yaml:"size" toml:"size"`
	Border Line    `yaml:"border" toml:"border"`
}

// SeriesStyle is one slot of the series palette. Slot 0 styles risers,
// slot i+1 styles the i-th milestone of a task.
type SeriesStyle struct {
	Color      string       `yaml:"color" toml:"color"`
	Border     Line         `yaml:"border" toml:"border"`
	RiserShape string       `yaml:"riser_shape" toml:"riser_shape"` // "bar" or "line"
	Marker     SeriesMarker `yaml:"marker" toml:"marker"`
	Tooltip    string       `yaml:"tooltip" toml:"tooltip"`
}

// Canvas is the drawing area.
type Canvas struct {
	Width      float64 `yaml:"width" toml:"width"`           // Available width in pixels
	Height     float64 `yaml:"height" toml:"height"`         // Available height in pixels
	Background string  `yaml:"background" toml:"background"` // Document background; empty leaves it transparent
}

// Columns maps CSV header names (case-insensitive) to task fields.
type Columns struct {
	Label     string `yaml:"label" toml:"label"`
	Start     string `yaml:"start" toml:"start"`
	Stop      string `yaml:"stop" toml:"stop"`
	Milestone string `yaml:"milestone" toml:"milestone"` // Multiple milestones are separated by ';'
	Shape     string `yaml:"shape" toml:"shape"`
	Color     string `yaml:"color" toml:"color"`
}

// Config is the complete configuration.
type Config struct {
	Properties Properties    `yaml:"properties" toml:"properties"`
	Canvas     Canvas        `yaml:"canvas" toml:"canvas"`
	Series     []SeriesStyle `yaml:"series" toml:"series"`
	Columns    Columns       `yaml:"columns" toml:"columns"`
	Measure    string        `yaml:"measure" toml:"measure"`   // Text measurer: "estimate" or "basicfont"
	Timezone   string        `yaml:"timezone" toml:"timezone"` // IANA zone used to read dates without an offset
}

// Default returns the configuration used when no file is given:
//   - 1200x800 white canvas, labels limited to a quarter of the width
//   - 10pt sans-serif labels and axis text, light grey dividers
//   - a four-slot palette: blue risers, then milestone colors
//   - dates without an offset read as UTC
func Default() Config {
	divider := Line{Color: "#d0d0d0", Width: 1}
	return Config{
		Properties: Properties{
			Layout: Layout{MaxLabelWidth: 0.25},
			Style: Style{
				Labels: LabelStyle{
					Font:     "10pt sans-serif",
					Color:    "#333333",
					Border:   Line{Color: "#999999", Width: 1},
					Dividers: divider,
				},
				TimeAxis: AxisStyle{
					Fill:     "#f4f4f4",
					Border:   Line{Color: "#999999", Width: 1},
					Dividers: divider,
					Rows: []AxisRow{
						{Label: AxisLabel{Font: "10pt sans-serif", Color: "#333333"}},
						{Label: AxisLabel{Font: "9pt sans-serif", Color: "#555555"}},
					},
				},
				Risers: RiserStyle{
					Border:     Line{Color: "#999999", Width: 1},
					Dividers:   Line{Color: "#ececec", Width: 1},
					AltRowFill: "#fafafa",
					Inset:      0.3,
					Data: RiserData{
						InvertedStartStop: Inverted{Color: "#d9534f"},
						OnlyStart:         MarkerStyle{Color: "#2e7d32", Marker: Marker{Shape: "circle", Size: 4}},
						OnlyStop:          MarkerStyle{Color: "#c62828"},
					},
				},
			},
		},
		Canvas: Canvas{Width: 1200, Height: 800, Background: "#ffffff"},
		Series: []SeriesStyle{
			{Color: "#4285f4", Border: Line{Color: "#2a5db0", Width: 1}, RiserShape: "bar"},
			{Color: "#f4b400", Marker: SeriesMarker{Shape: "diamond", Size: 10}},
			{Color: "#0f9d58", Marker: SeriesMarker{Shape: "triangle", Size: 10}},
			{Color: "#db4437", Marker: SeriesMarker{Shape: "square", Size: 8}},
		},
		Columns: Columns{
			Label:     "label",
			Start:     "start",
			Stop:      "stop",
			Milestone: "milestone",
			Shape:     "shape",
			Color:     "color",
		},
		Measure:  "estimate",
		Timezone: "UTC",
	}
}

// Load reads a configuration file over Default(). An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Location resolves Timezone. An empty zone means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Server is the HTTP render endpoint's environment-driven settings.
type Server struct {
	HTTPAddr     string // GANTT_HTTP_ADDR (default ":8080")
	ConfigPath   string // GANTT_CONFIG (optional chart config file)
	Debug        bool   // GANTT_DEBUG (default false)
	MaxBodyBytes int64  // GANTT_MAX_BODY_BYTES (default 1 MiB)
}

// LoadServer reads the server settings from the environment.
func LoadServer() (*Server, error) {
	s := &Server{
		HTTPAddr:   envOrDefault("GANTT_HTTP_ADDR", ":8080"),
		ConfigPath: os.Getenv("GANTT_CONFIG"),
	}

	debug, err := strconv.ParseBool(envOrDefault("GANTT_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("GANTT_DEBUG: %w", err)
	}
	s.Debug = debug

	limit, err := strconv.ParseInt(envOrDefault("GANTT_MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("GANTT_MAX_BODY_BYTES: %w", err)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("GANTT_MAX_BODY_BYTES must be positive, got %d", limit)
	}
	s.MaxBodyBytes = limit

	return s, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
