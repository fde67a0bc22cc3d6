package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gantt2svg/internal/config"
	"gantt2svg/internal/gantt"
	"gantt2svg/internal/host"
	"gantt2svg/internal/source"
	"gantt2svg/internal/svg"
	"gantt2svg/internal/task"
)

// stdoutPath selects standard output as the render target.
const stdoutPath = "-"

// noDataOutput is the file written by --no-data without an input file.
const noDataOutput = "gantt.svg"

type renderOptions struct {
	input   string
	config  string
	output  string
	sort    string
	width   float64
	height  float64
	scrollX float64
	scrollY float64
	noData  bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a task file to SVG",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.Context(), renderOpts, cmd.OutOrStdout(), cmd.ErrOrStderr(), stdoutIsTerminal)
	},
}

func init() {
	addRenderFlags(renderCmd, &renderOpts)
}

func addRenderFlags(cmd *cobra.Command, o *renderOptions) {
	f := cmd.Flags()
	f.StringVar(&o.input, "input", "", "CSV or JSON file with task data")
	f.StringVar(&o.config, "config", "", "YAML or TOML configuration file (optional)")
	f.StringVar(&o.output, "output", "", `Output SVG filename, "-" for stdout (optional)`)
	f.StringVar(&o.sort, "sort", "", "Sort tasks by label, start_time or stop_time (overrides config)")
	f.Float64Var(&o.width, "width", 0, "Canvas width in pixels (overrides config)")
	f.Float64Var(&o.height, "height", 0, "Canvas height in pixels (overrides config)")
	f.Float64Var(&o.scrollX, "scroll-x", 0, "Initial horizontal scroll of an overflowing chart, in scroll bar pixels")
	f.Float64Var(&o.scrollY, "scroll-y", 0, "Initial vertical scroll of an overflowing chart, in scroll bar pixels")
	f.BoolVar(&o.noData, "no-data", false, "Render the placeholder chart instead of task data")
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runRender loads the configuration and tasks, renders the chart and
// writes it to the output file or stdout. Progress messages go to msg.
func runRender(ctx context.Context, o renderOptions, stdout, msg io.Writer, isTerminal func() bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.input == "" && !o.noData {
		return errors.New("input file is required; use --input to specify the file or --no-data for a placeholder chart")
	}

	cfg, err := config.Load(o.config)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if o.sort != "" {
		cfg.Properties.Sort = o.sort
	}
	if o.width > 0 {
		cfg.Canvas.Width = o.width
	}
	if o.height > 0 {
		cfg.Canvas.Height = o.height
	}
	log.WithFields(log.Fields{
		"width":   cfg.Canvas.Width,
		"height":  cfg.Canvas.Height,
		"sort":    cfg.Properties.Sort,
		"measure": cfg.Measure,
	}).Debug("configuration loaded")

	h, err := host.New(cfg)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	var raw []task.Raw
	if !o.noData {
		if raw, err = source.Load(o.input, cfg.Columns); err != nil {
			return fmt.Errorf("error loading tasks: %w", err)
		}
		fmt.Fprintf(msg, "Loaded %d records from %s\n", len(raw), o.input)
	}

	doc, err := svg.New("", cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return err
	}
	if host.IsVisible(cfg.Canvas.Background) {
		doc.Fill(cfg.Canvas.Background)
	}

	rc := gantt.RenderConfig{
		Doc:        doc,
		Data:       raw,
		Properties: cfg.Properties,
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Host:       h,
		Location:   loc,
	}
	renderFn := gantt.Render
	if len(raw) == 0 {
		log.Info("no task data, rendering placeholder chart")
		renderFn = gantt.RenderNoData
	}
	res, err := renderFn(ctx, rc)
	if err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	if res.Horizontal != nil && o.scrollX != 0 {
		res.Horizontal.Drag(o.scrollX)
	}
	if res.Vertical != nil && o.scrollY != 0 {
		res.Vertical.Drag(o.scrollY)
	}

	outputPath := getOutputFilename(o.input, o.output)
	if outputPath == stdoutPath {
		if isTerminal() {
			return errors.New("refusing to write SVG to a terminal; redirect stdout or use --output")
		}
		_, err := doc.WriteTo(stdout)
		return err
	}
	if err := os.WriteFile(outputPath, []byte(doc.String()), 0644); err != nil {
		return fmt.Errorf("error writing SVG file: %w", err)
	}
	fmt.Fprintf(msg, "Gantt SVG generated successfully: %s\n", outputPath)
	return nil
}

// getOutputFilename determines the output filename for the SVG file.
// If outputFile is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the input file by replacing
// the extension with .svg (e.g., "plan.csv" becomes "plan.svg").
func getOutputFilename(inputFile, outputFile string) string {
	if outputFile != "" {
		return outputFile
	}
	if inputFile == "" {
		return noDataOutput
	}

	base := filepath.Base(inputFile)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".svg"
}
