package model

import (
	"time"
)

// Session is one closed interval of timed work on a task. Sessions are
// append-only; they are never edited or merged after the fact.
type Session struct {
	ID       string    `json:"id"`
	TaskID   string    `json:"task_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration"` // whole seconds
}

// SessionDuration computes whole seconds between start and end, clamped
// to zero so a backwards clock can never produce a negative duration.
func SessionDuration(start, end time.Time) int {
	secs := int(end.Sub(start).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}
