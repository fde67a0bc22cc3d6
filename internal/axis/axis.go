// Package axis chooses the time-axis granularity for a set of tasks and
// builds its rows of tick cells.
package axis

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"gantt2svg/internal/task"
	"gantt2svg/internal/timescale"
)

// ErrSpan means no usable time axis could be built: either no instant
// exists in the data or the span is too small even for the hour tier.
var ErrSpan = errors.New("error calculating time span")

// Tier thresholds: a tier is chosen when strictly more than this many
// fine-grained cells result (trailing boundary excluded).
const (
	minYears  = 5
	minMonths = 4
	minDays   = 1
	minHours  = 2
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Tier is the axis granularity.
type Tier int

const (
	TierNone Tier = iota
	TierYear
	TierMonth
	TierDay
	TierHour
)

func (t Tier) String() string {
	switch t {
	case TierYear:
		return "year"
	case TierMonth:
		return "month"
	case TierDay:
		return "day"
	case TierHour:
		return "hour"
	}
	return "none"
}

// Cell is one tick label spanning Width fine-grained cells from Start.
type Cell struct {
	Start int
	Width int
	Text  string
}

// Axis is the resolved time axis. Rows run coarse to fine; the last row
// always has exactly Count cells of width 1.
type Axis struct {
	Tier  Tier
	Scale *timescale.Scale
	Rows  [][]Cell
	Count int
}

// Bounds returns the earliest and latest instant over every riser endpoint
// and milestone. ok is false when no instant is present.
func Bounds(tasks []task.Task) (start, stop time.Time, ok bool) {
	see := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if start.IsZero() || t.Before(start) {
			start = t
		}
		if stop.IsZero() || t.After(stop) {
			stop = t
		}
	}
	for _, t := range tasks {
		for _, r := range t.Risers {
			see(r.Start)
			see(r.Stop)
		}
		for _, m := range t.Milestones {
			see(m.Time)
		}
	}
	return start, stop, !start.IsZero()
}

// Resolve builds the axis for tasks.
func Resolve(tasks []task.Task) (*Axis, error) {
	start, stop, ok := Bounds(tasks)
	if !ok {
		return nil, fmt.Errorf("%w: no valid start, stop or milestone time", ErrSpan)
	}
	return ResolveSpan(start, stop)
}

// ResolveSpan builds the axis for [start, stop], trying year, month, day
// and hour tiers in that order.
func ResolveSpan(start, stop time.Time) (*Axis, error) {
	n0, n1 := timescale.NiceAuto(start, stop)

	years := dropLast(timescale.Ticks(n0, n1, timescale.Every(timescale.Year, 1)))
	if len(years) > minYears {
		row := make([]Cell, len(years))
		for i, y := range years {
			row[i] = Cell{Start: i, Width: 1, Text: strconv.Itoa(y.Year())}
		}
		return newAxis(TierYear, n0, n1, [][]Cell{row}, len(years)), nil
	}

	months := dropLast(timescale.Ticks(n0, n1, timescale.Every(timescale.Month, 1)))
	if len(months) > minMonths {
		fine := cells(months, monthText)
		rows := [][]Cell{fine}
		if months[len(months)-1].Year() > months[0].Year() {
			rows = [][]Cell{merge(months, yearKey, yearText), fine}
		}
		return newAxis(TierMonth, n0, n1, rows, len(months)), nil
	}

	d0, d1 := timescale.Nice(start, stop, timescale.Every(timescale.Day, 1))
	days := dropLast(timescale.Ticks(d0, d1, timescale.Every(timescale.Day, 1)))
	if len(days) > minDays {
		fine := cells(days, dayText)
		rows := [][]Cell{fine}
		if monthKey(days[len(days)-1]) > monthKey(days[0]) {
			rows = [][]Cell{merge(days, monthKey, monthText), fine}
		}
		return newAxis(TierDay, d0, d1, rows, len(days)), nil
	}

	hour := timescale.Every(timescale.Hour, 1)
	h0, h1 := timescale.Nice(start, stop, hour)
	if hours := dropLast(timescale.Ticks(h0, h1, hour)); len(hours) > minHours {
		h0, h1 = timescale.Nice(padStart(start), padStop(stop), hour)
		hours = dropLast(timescale.Ticks(h0, h1, hour))
		return newAxis(TierHour, h0, h1, [][]Cell{cells(hours, hourText)}, len(hours)), nil
	}

	return nil, fmt.Errorf("%w: span %s to %s is too short", ErrSpan,
		start.Format(time.RFC3339), stop.Format(time.RFC3339))
}

func newAxis(tier Tier, d0, d1 time.Time, rows [][]Cell, count int) *Axis {
	log.WithFields(log.Fields{
		"tier":  tier.String(),
		"from":  d0.Format(time.RFC3339),
		"to":    d1.Format(time.RFC3339),
		"rows":  len(rows),
		"count": count,
	}).Debug("resolved time axis")
	return &Axis{
		Tier:  tier,
		Scale: timescale.NewScale(d0, d1),
		Rows:  rows,
		Count: count,
	}
}

// padStart widens the hour-tier start: before 03:00 it drops to midnight,
// otherwise one hour earlier.
func padStart(t time.Time) time.Time {
	y, m, d := t.Date()
	h := t.Hour()
	if h < 3 {
		h = 0
	} else {
		h--
	}
	return time.Date(y, m, d, h, 0, 0, 0, t.Location())
}

// padStop widens the hour-tier stop: late morning goes to noon, evening to
// midnight, otherwise one hour later. The result never precedes t.
func padStop(t time.Time) time.Time {
	y, m, d := t.Date()
	h := t.Hour()
	switch {
	case h > 10 && h < 13:
		h = 12
	case h > 19:
		h = 24
	default:
		h++
	}
	p := time.Date(y, m, d, h, 0, 0, 0, t.Location())
	if p.Before(t) {
		return timescale.Every(timescale.Hour, 1).Ceil(t)
	}
	return p
}

func dropLast(ticks []time.Time) []time.Time {
	if len(ticks) == 0 {
		return ticks
	}
	return ticks[:len(ticks)-1]
}

func cells(ticks []time.Time, text func(time.Time) string) []Cell {
	row := make([]Cell, len(ticks))
	for i, t := range ticks {
		row[i] = Cell{Start: i, Width: 1, Text: text(t)}
	}
	return row
}

// merge builds a coarse row: each change of key starts a new cell, and
// ticks sharing the previous key widen it.
func merge(ticks []time.Time, key func(time.Time) int, text func(time.Time) string) []Cell {
	var row []Cell
	for i, t := range ticks {
		if i == 0 || key(t) != key(ticks[i-1]) {
			row = append(row, Cell{Start: i, Width: 1, Text: text(t)})
			continue
		}
		row[len(row)-1].Width++
	}
	return row
}

func yearKey(t time.Time) int  { return t.Year() }
func monthKey(t time.Time) int { return t.Year()*12 + int(t.Month()) - 1 }

func yearText(t time.Time) string  { return strconv.Itoa(t.Year()) }
func monthText(t time.Time) string { return monthNames[t.Month()-1] }
func dayText(t time.Time) string   { return strconv.Itoa(t.Day()) }
func hourText(t time.Time) string  { return t.Format("15:04") }
