// Package recur decides when recurring tasks are due and spawns fresh
// sibling instances. Spawning never touches the original's timer or
// session history.
package recur

import (
	"time"

	"github.com/google/uuid"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

const day = 24 * time.Hour

// Due reports whether a recurring task should spawn a new instance now.
// The baseline is the last spawn, falling back to creation time for
// templates that have never recurred.
func Due(t model.Task, now time.Time) bool {
	if t.Recurrence == model.RecurNone || t.Recurrence == "" {
		return false
	}
	last := t.CreatedAt
	if t.LastRecurrence != nil {
		last = *t.LastRecurrence
	}
	since := now.Sub(last)

	switch t.Recurrence {
	case model.RecurDaily:
		return since >= day
	case model.RecurWeekdays:
		return since >= day && isWeekday(now.Weekday())
	case model.RecurCustom:
		return since >= day && containsWeekday(t.CustomDays, now.Weekday())
	case model.RecurWeekly:
		return since >= 7*day
	case model.RecurBiweekly:
		return since >= 14*day
	case model.RecurMonthly:
		return since >= 30*day
	}
	return false
}

// Spawn clones a template into a fresh, un-started instance and stamps
// the template's LastRecurrence. The clone keeps descriptive and
// scheduling fields only.
func Spawn(t model.Task, now time.Time) (template, clone model.Task) {
	stamp := now
	t.LastRecurrence = &stamp
	t.UpdatedAt = now

	clone = model.Task{
		ID:              uuid.New().String(),
		Title:           t.Title,
		Type:            t.Type,
		Size:            t.Size,
		Priority:        t.Priority,
		OrgID:           t.OrgID,
		TagIDs:          append([]string(nil), t.TagIDs...),
		Notes:           t.Notes,
		Recurrence:      t.Recurrence,
		CustomDays:      append([]time.Weekday(nil), t.CustomDays...),
		ScheduledTime:   t.ScheduledTime,
		AutoComplete:    t.AutoComplete,
		DurationMinutes: t.DurationMinutes,
		LastRecurrence:  &stamp,
		Quality:         model.QualityUnrated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return t, clone
}

// SpawnDue walks the list, spawns every due recurrence and returns the
// updated list with clones appended, plus the clones themselves so the
// caller can notify on them.
func SpawnDue(tasks []model.Task, now time.Time) ([]model.Task, []model.Task) {
	var spawned []model.Task
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if Due(t, now) {
			updated, clone := Spawn(t, now)
			out[i] = updated
			spawned = append(spawned, clone)
		} else {
			out[i] = t
		}
	}
	return append(out, spawned...), spawned
}

func isWeekday(d time.Weekday) bool {
	return d >= time.Monday && d <= time.Friday
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, c := range days {
		if c == d {
			return true
		}
	}
	return false
}
