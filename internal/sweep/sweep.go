// Package sweep is the once-per-minute pass over the task list: scheduled
// auto-starts, auto-completes, recurrence spawning, stale-task and morning
// reminders. It takes a snapshot plus a marker set and returns new ones;
// the host persists the results and delivers notifications for the events.
package sweep

import (
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/recur"
	"github.com/kolisa/Daily-task-manager/internal/timer"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04"
)

// Markers records which once-per-day (or once-per-24h) actions have fired.
// Values are day stamps for daily gates and RFC3339 timestamps for the
// stale reminders.
type Markers map[string]string

// EventKind identifies what a sweep event is about
type EventKind int

const (
	EventAutoStarted EventKind = iota
	EventAutoCompleted
	EventRecurrenceSpawned
	EventStaleTask
	EventMorningReminder
)

// Event is something the sweep did or noticed that the host may want to
// notify on
type Event struct {
	Kind EventKind
	Task model.Task
}

// Config holds the sweep's host-supplied settings
type Config struct {
	MorningReminder string // "HH:MM", empty disables
	Exclusive       bool   // timer exclusivity applied to auto-starts
}

// Run executes one sweep. The input task list and markers are left
// untouched; updated copies come back along with the events raised.
func Run(tasks []model.Task, markers Markers, now time.Time, cfg Config) ([]model.Task, Markers, []Event) {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	m := make(Markers, len(markers))
	for k, v := range markers {
		m[k] = v
	}

	var events []Event
	today := now.Format(dayLayout)
	minute := now.Format(timeLayout)

	// Scheduled auto-starts, once per calendar day per task
	for _, t := range out {
		if t.ScheduledTime == "" || t.Completed || t.TimerRunning || t.Archived {
			continue
		}
		if t.ScheduledTime != minute || m["autostart_"+t.ID] == today {
			continue
		}
		out = timer.Start(out, t.ID, now, timer.Options{Exclusive: cfg.Exclusive})
		m["autostart_"+t.ID] = today
		if started, ok := findTask(out, t.ID); ok {
			events = append(events, Event{Kind: EventAutoStarted, Task: started})
		}
	}

	// Auto-completes: credit exactly the configured duration so the sweep
	// interval cannot drift the stored session
	for i, t := range out {
		if !t.TimerRunning || !t.AutoComplete || t.DurationMinutes <= 0 || t.TimerStartedAt == nil {
			continue
		}
		if now.Sub(*t.TimerStartedAt) < time.Duration(t.DurationMinutes)*time.Minute {
			continue
		}
		if m["autostop_"+t.ID] == today {
			continue
		}
		t = timer.CloseFixedSession(t, now, t.DurationMinutes*60)
		completed := now
		t.Completed = true
		t.CompletedAt = &completed
		t.UpdatedAt = now
		out[i] = t
		m["autostop_"+t.ID] = today
		events = append(events, Event{Kind: EventAutoCompleted, Task: t})
	}

	// Recurrence spawning; the due check is self-gating via LastRecurrence
	var spawned []model.Task
	out, spawned = recur.SpawnDue(out, now)
	for _, clone := range spawned {
		events = append(events, Event{Kind: EventRecurrenceSpawned, Task: clone})
	}

	// Stale tasks, reminded at most once per 24h
	for _, t := range out {
		if t.Archived || !t.IsStale(now) {
			continue
		}
		key := "stale_" + t.ID
		if last, ok := m[key]; ok {
			if ts, err := time.Parse(time.RFC3339, last); err == nil && now.Sub(ts) < 24*time.Hour {
				continue
			}
		}
		m[key] = now.Format(time.RFC3339)
		events = append(events, Event{Kind: EventStaleTask, Task: t})
	}

	// Morning planning reminder, once per day
	if cfg.MorningReminder != "" && cfg.MorningReminder == minute && m["morning"] != today {
		m["morning"] = today
		events = append(events, Event{Kind: EventMorningReminder})
	}

	return out, m, events
}

func findTask(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
