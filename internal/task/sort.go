package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects how tasks and their risers are ordered.
type SortMode string

const (
	SortNone  SortMode = ""
	SortLabel SortMode = "label"
	SortStart SortMode = "start_time"
	SortStop  SortMode = "stop_time"
)

// ErrSortMode is returned by ParseSortMode for unknown modes.
var ErrSortMode = errors.New("unknown sort mode")

// ParseSortMode accepts "label", "start_time", "stop_time", and "" or
// "none" for no sorting.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortNone, SortLabel, SortStart, SortStop:
		return m, nil
	case "none":
		return SortNone, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrSortMode, s)
	}
}

// Sort orders tasks in place and returns them. Each task's risers are
// sorted first with the same mode, then the tasks themselves; the task
// comparator reads the first riser's start or the last riser's stop.
//
// Absent values do not sort the same way in every mode: a task without a
// label goes after labelled ones, while a task without a start (or stop)
// goes before timed ones.
func Sort(tasks []Task, mode SortMode) []Task {
	if mode == SortNone {
		return tasks
	}

	for i := range tasks {
		if len(tasks[i].Risers) > 1 {
			sortRisers(tasks[i].Risers, mode)
		}
	}

	switch mode {
	case SortLabel:
		col := collate.New(language.Und)
		slices.SortStableFunc(tasks, func(a, b Task) int {
			switch {
			case a.Label != "" && b.Label != "":
				return col.CompareString(a.Label, b.Label)
			case a.Label != "":
				return -1
			case b.Label != "":
				return 1
			}
			return 0
		})
	case SortStart:
		slices.SortStableFunc(tasks, func(a, b Task) int {
			return compareTimes(firstStart(a), firstStart(b))
		})
	case SortStop:
		slices.SortStableFunc(tasks, func(a, b Task) int {
			return compareTimes(lastStop(a), lastStop(b))
		})
	}
	return tasks
}

// sortRisers applies mode to a single task's risers. Risers carry no
// label, so label mode leaves them in place.
func sortRisers(risers []Riser, mode SortMode) {
	switch mode {
	case SortStart:
		slices.SortStableFunc(risers, func(a, b Riser) int {
			return compareTimes(a.Start, b.Start)
		})
	case SortStop:
		slices.SortStableFunc(risers, func(a, b Riser) int {
			return compareTimes(a.Stop, b.Stop)
		})
	}
}

// compareTimes orders present instants chronologically and puts absent
// (zero) instants first.
func compareTimes(a, b time.Time) int {
	switch {
	case !a.IsZero() && !b.IsZero():
		return a.Compare(b)
	case !a.IsZero():
		return 1
	case !b.IsZero():
		return -1
	}
	return 0
}

func firstStart(t Task) time.Time {
	if len(t.Risers) == 0 {
		return time.Time{}
	}
	return t.Risers[0].Start
}

func lastStop(t Task) time.Time {
	if len(t.Risers) == 0 {
		return time.Time{}
	}
	return t.Risers[len(t.Risers)-1].Stop
}
