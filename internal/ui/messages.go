package ui

import (
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/sweep"
)

// View represents the current active view
type View int

const (
	ViewTasks View = iota
	ViewDashboard
	ViewFocus
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewTasks:
		return "Tasks"
	case ViewDashboard:
		return "Dashboard"
	case ViewFocus:
		return "Focus"
	default:
		return "Unknown"
	}
}

// Messages for inter-component communication

// StateLoadedMsg carries the full working set loaded from the store
type StateLoadedMsg struct {
	Tasks   []model.Task
	Orgs    []model.Organization
	Tags    []model.Tag
	Markers sweep.Markers
	Err     error
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// TickMsg drives the once-per-second timer redraw
type TickMsg struct {
	Time time.Time
}

// SweepTickMsg fires the once-per-minute background sweep
type SweepTickMsg struct {
	Time time.Time
}
