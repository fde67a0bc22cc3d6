// Package timescale provides calendar intervals, "nice" domain rounding,
// tick enumeration and a linear time-to-pixel scale.
//
// All calendar arithmetic happens in the location of the instants passed
// in, so a domain parsed in UTC ticks on UTC boundaries.
package timescale

import (
	"math"
	"sort"
	"time"
)

// Unit is a calendar granularity.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// floor rounds t down to the start of its unit. Sub-day units subtract the
// elapsed wall clock instead of rebuilding the time, so an hour repeated at
// a daylight saving fall-back keeps its own offset.
func (u Unit) floor(t time.Time) time.Time {
	ns := time.Duration(t.Nanosecond())
	sec := time.Duration(t.Second()) * time.Second
	mins := time.Duration(t.Minute()) * time.Minute
	switch u {
	case Millisecond:
		return t.Truncate(time.Millisecond)
	case Second:
		return t.Add(-ns)
	case Minute:
		return t.Add(-(sec + ns))
	case Hour:
		return t.Add(-(mins + sec + ns))
	}
	y, m, d := t.Date()
	loc := t.Location()
	switch u {
	case Day:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case Week:
		day := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return day.AddDate(0, 0, -int(day.Weekday()))
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
}

func (u Unit) offset(t time.Time, n int) time.Time {
	switch u {
	case Millisecond:
		return t.Add(time.Duration(n) * time.Millisecond)
	case Second:
		return t.Add(time.Duration(n) * time.Second)
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(n, 0, 0)
	}
}

// field is the calendar field an Every(k) interval filters on.
func (u Unit) field(t time.Time) int {
	switch u {
	case Second:
		return t.Second()
	case Minute:
		return t.Minute()
	case Hour:
		return t.Hour()
	case Day:
		return t.Day() - 1
	case Month:
		return int(t.Month()) - 1
	default:
		return 0
	}
}

// Interval is a unit taken Step at a time. Multi-step intervals land on
// boundaries where the unit's calendar field is a multiple of Step (hours
// 0,3,6... for Every(Hour, 3)); years and milliseconds use multiples of
// the absolute value instead.
type Interval struct {
	Unit Unit
	Step int
}

// Every returns the interval of step units. Steps below 1 are treated as 1.
func Every(u Unit, step int) Interval {
	if step < 1 {
		step = 1
	}
	return Interval{Unit: u, Step: step}
}

func (iv Interval) simple() bool {
	return iv.Step <= 1 || iv.Unit == Week
}

// Floor returns the latest boundary at or before t.
func (iv Interval) Floor(t time.Time) time.Time {
	switch {
	case iv.simple():
		return iv.Unit.floor(t)
	case iv.Unit == Millisecond:
		k := int64(iv.Step)
		ms := t.UnixMilli()
		return time.UnixMilli(floorDiv(ms, k) * k).In(t.Location())
	case iv.Unit == Year:
		y := int(floorDiv(int64(t.Year()), int64(iv.Step))) * iv.Step
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	}
	f := iv.Unit.floor(t)
	for iv.Unit.field(f)%iv.Step != 0 {
		f = iv.Unit.floor(iv.Unit.offset(f, -1))
	}
	return f
}

// Offset advances a boundary by n intervals (n >= 0).
func (iv Interval) Offset(t time.Time, n int) time.Time {
	switch {
	case iv.simple():
		return iv.Unit.offset(t, n)
	case iv.Unit == Millisecond, iv.Unit == Year:
		return iv.Unit.offset(t, n*iv.Step)
	}
	for i := 0; i < n; i++ {
		for {
			t = iv.Unit.offset(t, 1)
			if iv.Unit.field(t)%iv.Step == 0 {
				break
			}
		}
	}
	return t
}

// Ceil returns the earliest boundary at or after t.
func (iv Interval) Ceil(t time.Time) time.Time {
	d := iv.Floor(t.Add(-time.Nanosecond))
	d = iv.Offset(d, 1)
	return iv.Floor(d)
}

// Range returns every boundary in [start, stop).
func (iv Interval) Range(start, stop time.Time) []time.Time {
	start = iv.Ceil(start)
	if !start.Before(stop) {
		return nil
	}
	var out []time.Time
	for {
		out = append(out, start)
		prev := start
		start = iv.Floor(iv.Offset(start, 1))
		if !(prev.Before(start) && start.Before(stop)) {
			break
		}
	}
	return out
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

const (
	durationMonth = 30 * 24 * time.Hour
	durationYear  = 365 * 24 * time.Hour
)

// tickIntervals are the candidate intervals for automatic nicing, ordered
// by approximate duration.
var tickIntervals = []struct {
	iv  Interval
	dur time.Duration
}{
	{Every(Second, 1), time.Second},
	{Every(Second, 5), 5 * time.Second},
	{Every(Second, 15), 15 * time.Second},
	{Every(Second, 30), 30 * time.Second},
	{Every(Minute, 1), time.Minute},
	{Every(Minute, 5), 5 * time.Minute},
	{Every(Minute, 15), 15 * time.Minute},
	{Every(Minute, 30), 30 * time.Minute},
	{Every(Hour, 1), time.Hour},
	{Every(Hour, 3), 3 * time.Hour},
	{Every(Hour, 6), 6 * time.Hour},
	{Every(Hour, 12), 12 * time.Hour},
	{Every(Day, 1), 24 * time.Hour},
	{Every(Day, 2), 48 * time.Hour},
	{Every(Week, 1), 7 * 24 * time.Hour},
	{Every(Month, 1), durationMonth},
	{Every(Month, 3), 3 * durationMonth},
	{Every(Year, 1), durationYear},
}

// TickInterval picks the interval that yields roughly count ticks over
// [start, stop]. Between two candidates the one whose duration ratio to
// the target is smaller wins.
func TickInterval(start, stop time.Time, count int) Interval {
	if count < 1 {
		count = 1
	}
	span := stop.Sub(start)
	if span < 0 {
		span = -span
	}
	target := float64(span) / float64(count)

	i := sort.Search(len(tickIntervals), func(i int) bool {
		return float64(tickIntervals[i].dur) > target
	})
	switch i {
	case len(tickIntervals):
		y0 := float64(start.UnixMilli()) / float64(durationYear.Milliseconds())
		y1 := float64(stop.UnixMilli()) / float64(durationYear.Milliseconds())
		return Every(Year, int(math.Round(tickStep(y0, y1, count))))
	case 0:
		ms := tickStep(float64(start.UnixMilli()), float64(stop.UnixMilli()), count)
		return Every(Millisecond, int(math.Round(ms)))
	}
	prev, next := tickIntervals[i-1], tickIntervals[i]
	if target/float64(prev.dur) < float64(next.dur)/target {
		return prev.iv
	}
	return next.iv
}

// tickStep returns a 1, 2 or 5 times power-of-ten step covering
// [start, stop] in about count steps.
func tickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / float64(count)
	if step0 == 0 || math.IsNaN(step0) || math.IsInf(step0, 0) {
		return 0
	}
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	switch e := step0 / step1; {
	case e >= math.Sqrt(50):
		step1 *= 10
	case e >= math.Sqrt(10):
		step1 *= 5
	case e >= math.Sqrt(2):
		step1 *= 2
	}
	return step1
}

// Nice extends [start, stop] outward to boundaries of iv.
func Nice(start, stop time.Time, iv Interval) (time.Time, time.Time) {
	return iv.Floor(start), iv.Ceil(stop)
}

// NiceAuto extends [start, stop] to the boundaries of the interval that
// gives about ten ticks.
func NiceAuto(start, stop time.Time) (time.Time, time.Time) {
	return Nice(start, stop, TickInterval(start, stop, 10))
}

// Ticks returns every boundary of iv in [start, stop], both ends inclusive.
func Ticks(start, stop time.Time, iv Interval) []time.Time {
	return iv.Range(start, stop.Add(time.Nanosecond))
}
