package task

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Normalize turns raw records into tasks. Each record gets its positional
// index as GroupID. Records sharing a label are merged into the task of the
// first one: risers and milestones are appended, never replaced, and
// GroupIDs are never renumbered. Output order is the order in which each
// label first appears.
func Normalize(raw []Raw, loc *time.Location) []Task {
	byLabel := make(map[string]int, len(raw))
	tasks := make([]Task, 0, len(raw))

	for idx, r := range raw {
		riser := Riser{
			Start:   sanitized(r.Start, loc),
			Stop:    sanitized(r.Stop, loc),
			GroupID: idx,
			Shape:   r.Shape,
			Color:   r.Color,
		}
		milestones := milestoneValues(r.Milestone)
		ms := make([]Milestone, 0, len(milestones))
		for _, m := range milestones {
			ms = append(ms, Milestone{Time: sanitized(m, loc), GroupID: idx})
		}

		if pos, ok := byLabel[r.Label]; ok {
			tasks[pos].Risers = append(tasks[pos].Risers, riser)
			tasks[pos].Milestones = append(tasks[pos].Milestones, ms...)
			continue
		}
		byLabel[r.Label] = len(tasks)
		tasks = append(tasks, Task{
			Label:      r.Label,
			Risers:     []Riser{riser},
			Milestones: ms,
		})
	}

	log.WithFields(log.Fields{"records": len(raw), "tasks": len(tasks)}).Debug("normalized task records")
	return tasks
}

// milestoneValues flattens a scalar-or-slice milestone field.
func milestoneValues(v any) []any {
	switch m := v.(type) {
	case nil:
		return nil
	case []any:
		return m
	case []string:
		out := make([]any, len(m))
		for i, s := range m {
			out[i] = s
		}
		return out
	case string:
		if m == "" {
			return nil
		}
		return []any{m}
	default:
		return []any{m}
	}
}
