package gantt

import (
	"context"

	"gantt2svg/internal/config"
	"gantt2svg/internal/host"
	"gantt2svg/internal/task"
)

const (
	noDataColor = "#cccccc"
	noDataFont  = "12pt helvetica"
	noDataText  = "white"
)

// placeholder is the fixed data set drawn when there is nothing to show.
func placeholder() []task.Raw {
	return []task.Raw{
		{Label: "Long Task 1", Start: "2016/04/15 00:00:00", Stop: "2016/06/23 00:00:00"},
		{Label: "Long Task 2", Start: "2016/05/10 00:00:00", Stop: "2016/07/20 00:00:00"},
		{Label: "Long Task 3", Start: "2016/06/21 00:00:00", Stop: "2016/09/19 00:00:00"},
	}
}

// RenderNoData draws a placeholder chart: three long tasks in cfg.BaseColor
// (grey when empty) with black borders, and white 12pt label and axis
// text. cfg.Data is ignored and cfg.Properties is not modified.
func RenderNoData(ctx context.Context, cfg RenderConfig) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	base := cfg.BaseColor
	if base == "" {
		base = noDataColor
	}
	cfg.Data = placeholder()
	cfg.Host.Styles = host.WithSeries(cfg.Host.Styles, 0, config.SeriesStyle{
		Color:  base,
		Border: config.Line{Color: "black", Width: 1},
	})

	style := &cfg.Properties.Style
	style.Labels.Font = noDataFont
	style.Labels.Color = noDataText
	rows := append([]config.AxisRow(nil), style.TimeAxis.Rows...)
	if len(rows) == 0 {
		rows = []config.AxisRow{{}}
	}
	rows[0].Label.Font = noDataFont
	rows[0].Label.Color = noDataText
	style.TimeAxis.Rows = rows

	return Render(ctx, cfg)
}
