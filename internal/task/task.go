// Package task holds the Gantt data model and the steps that turn raw
// records into it: time sanitizing, merging by label, and sorting.
package task

import "time"

// Raw is one untrusted input record. Start, Stop and Milestone are
// expected to be date strings; anything else is treated as absent.
// Milestone may be a single value or a slice. Shape and Color may be a
// name/value string or a numeric series index resolved later by the host.
type Raw struct {
	Label     string `json:"label"`
	Start     any    `json:"start"`
	Stop      any    `json:"stop"`
	Milestone any    `json:"milestone,omitempty"`
	Shape     any    `json:"shape,omitempty"`
	Color     any    `json:"color,omitempty"`
}

// Riser is one start/stop interval of a task. A zero Start or Stop means
// the endpoint is absent.
type Riser struct {
	Start   time.Time
	Stop    time.Time
	GroupID int
	Shape   any
	Color   any
}

// HasStart reports whether the start endpoint is present.
func (r Riser) HasStart() bool { return !r.Start.IsZero() }

// HasStop reports whether the stop endpoint is present.
func (r Riser) HasStop() bool { return !r.Stop.IsZero() }

// Drawable reports whether at least one endpoint is present.
func (r Riser) Drawable() bool { return r.HasStart() || r.HasStop() }

// Inverted reports whether both endpoints are present and stop precedes start.
func (r Riser) Inverted() bool {
	return r.HasStart() && r.HasStop() && r.Stop.Before(r.Start)
}

// Span returns the endpoints ordered earlier-to-later.
func (r Riser) Span() (time.Time, time.Time) {
	if r.Inverted() {
		return r.Stop, r.Start
	}
	return r.Start, r.Stop
}

// Milestone is a point-in-time marker. A zero Time means absent.
type Milestone struct {
	Time    time.Time
	GroupID int
}

// Task is every riser and milestone sharing one label.
type Task struct {
	Label      string
	Risers     []Riser
	Milestones []Milestone
}
