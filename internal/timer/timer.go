// Package timer implements the per-task timer state machine. Every
// operation takes a task snapshot and returns a new one; invalid-state
// transitions are defined as no-ops so a periodic sweep can call them
// without guarding.
package timer

import (
	"time"

	"github.com/google/uuid"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

// Options controls timer behavior that is deliberately configurable
type Options struct {
	// Exclusive pauses any other running timer when a new one starts.
	// Off by default: multiple tasks may accrue time concurrently.
	Exclusive bool
}

// Start begins timing a task. Valid from Idle or Paused; a no-op when the
// task is already running, completed, or unknown. With Exclusive set, any
// other running task is paused first.
func Start(tasks []model.Task, id string, now time.Time, opts Options) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		switch {
		case t.ID == id:
			if t.State() == model.StateRunning || t.State() == model.StateCompleted {
				out[i] = t
				continue
			}
			started := now
			t.TimerRunning = true
			t.TimerStartedAt = &started
			t.UpdatedAt = now
			out[i] = t
		case opts.Exclusive && t.TimerRunning:
			out[i] = closeSession(t, now)
		default:
			out[i] = t
		}
	}
	return out
}

// Pause closes the open session and accumulates its duration. Only valid
// from Running; otherwise a no-op.
func Pause(tasks []model.Task, id string, now time.Time) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id && t.TimerRunning && !t.Completed {
			out[i] = closeSession(t, now)
		} else {
			out[i] = t
		}
	}
	return out
}

// Stop completes a task, closing the open session first when one exists.
// Idempotent-terminal: once completed, further stops are no-ops.
func Stop(tasks []model.Task, id string, now time.Time) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID != id || t.Completed {
			out[i] = t
			continue
		}
		if t.TimerRunning {
			t = closeSession(t, now)
		}
		completed := now
		t.Completed = true
		t.CompletedAt = &completed
		t.UpdatedAt = now
		out[i] = t
	}
	return out
}

// ToggleComplete flips completion without touching the timer. Toggling a
// running task to done leaves its timer accruing; stop is the operation
// that settles the open session.
func ToggleComplete(tasks []model.Task, id string, now time.Time) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID != id {
			out[i] = t
			continue
		}
		if t.Completed {
			t.Completed = false
			t.CompletedAt = nil
		} else {
			completed := now
			t.Completed = true
			t.CompletedAt = &completed
		}
		t.UpdatedAt = now
		out[i] = t
	}
	return out
}

// RateQuality sets the quality rating on a task. Unknown ids and invalid
// ratings leave the list unchanged.
func RateQuality(tasks []model.Task, id string, q model.Quality, now time.Time) []model.Task {
	if !model.ValidQuality(q) {
		return tasks
	}
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t.Quality = q
			t.UpdatedAt = now
			out[i] = t
		} else {
			out[i] = t
		}
	}
	return out
}

// Elapsed returns total tracked seconds: closed sessions plus the
// currently-open session when the timer is running. Never mutates.
func Elapsed(t model.Task, now time.Time) int {
	total := t.TimeSpent
	if t.TimerRunning && t.TimerStartedAt != nil {
		total += model.SessionDuration(*t.TimerStartedAt, now)
	}
	return total
}

// closeSession performs the session-close bookkeeping as one step: append
// the session, accumulate its duration, clear the running fields. Callers
// only ever observe the task before or after the whole update.
func closeSession(t model.Task, now time.Time) model.Task {
	if !t.TimerRunning || t.TimerStartedAt == nil {
		t.TimerRunning = false
		t.TimerStartedAt = nil
		return t
	}
	start := *t.TimerStartedAt
	dur := model.SessionDuration(start, now)
	s := model.Session{
		ID:       uuid.New().String(),
		TaskID:   t.ID,
		Start:    start,
		End:      now,
		Duration: dur,
	}
	sessions := make([]model.Session, 0, len(t.Sessions)+1)
	sessions = append(sessions, t.Sessions...)
	t.Sessions = append(sessions, s)
	t.TimeSpent += dur
	t.TimerRunning = false
	t.TimerStartedAt = nil
	t.UpdatedAt = now
	return t
}

// CloseFixedSession closes the open session crediting exactly the given
// number of seconds instead of wall-clock elapsed. Used by auto-complete
// so the stored duration is not drifted by the sweep interval.
func CloseFixedSession(t model.Task, now time.Time, seconds int) model.Task {
	if !t.TimerRunning || t.TimerStartedAt == nil {
		return t
	}
	if seconds < 0 {
		seconds = 0
	}
	start := *t.TimerStartedAt
	s := model.Session{
		ID:       uuid.New().String(),
		TaskID:   t.ID,
		Start:    start,
		End:      start.Add(time.Duration(seconds) * time.Second),
		Duration: seconds,
	}
	sessions := make([]model.Session, 0, len(t.Sessions)+1)
	sessions = append(sessions, t.Sessions...)
	t.Sessions = append(sessions, s)
	t.TimeSpent += seconds
	t.TimerRunning = false
	t.TimerStartedAt = nil
	t.UpdatedAt = now
	return t
}
