package model

import (
	"time"
)

// TaskType categorizes the kind of work a task represents
type TaskType string

const (
	TypeFeature       TaskType = "feature"
	TypeBug           TaskType = "bug"
	TypeSupport       TaskType = "support"
	TypeLearning      TaskType = "learning"
	TypeStandup       TaskType = "standup"
	TypeMeeting       TaskType = "meeting"
	TypeAnalysis      TaskType = "analysis"
	TypeDocumentation TaskType = "documentation"
)

// Size is a t-shirt estimate mapped to hours and complexity points
type Size string

const (
	SizeXS  Size = "xs"
	SizeS   Size = "s"
	SizeM   Size = "m"
	SizeL   Size = "l"
	SizeXL  Size = "xl"
	SizeXXL Size = "xxl"
)

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Quality is the post-completion self-rating
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityAverage   Quality = "average"
	QualityPoor      Quality = "poor"
	QualityUnrated   Quality = "unrated"
)

// Recurrence is the repeat pattern for template tasks
type Recurrence string

const (
	RecurNone     Recurrence = "none"
	RecurDaily    Recurrence = "daily"
	RecurWeekdays Recurrence = "weekdays"
	RecurCustom   Recurrence = "custom"
	RecurWeekly   Recurrence = "weekly"
	RecurBiweekly Recurrence = "biweekly"
	RecurMonthly  Recurrence = "monthly"
)

// TimerState is the derived position of a task in the timer state machine
type TimerState int

const (
	StateIdle TimerState = iota
	StateRunning
	StatePaused
	StateCompleted
)

var sizeHours = map[Size]float64{
	SizeXS:  0.5,
	SizeS:   1.5,
	SizeM:   3,
	SizeL:   6,
	SizeXL:  12,
	SizeXXL: 16,
}

var sizePoints = map[Size]float64{
	SizeXS:  1,
	SizeS:   2,
	SizeM:   3,
	SizeL:   5,
	SizeXL:  8,
	SizeXXL: 13,
}

var priorityMultiplier = map[Priority]float64{
	PriorityHigh:   1.5,
	PriorityMedium: 1.0,
	PriorityLow:    0.75,
}

var qualityScore = map[Quality]float64{
	QualityExcellent: 5,
	QualityGood:      4,
	QualityAverage:   3,
	QualityPoor:      2,
}

// Task is the central record: descriptive fields, scheduling, lifecycle
// state and accumulated timer history. TimeSpent covers closed sessions
// only; a currently-open session is derived from TimerStartedAt on demand.
type Task struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     TaskType `json:"type"`
	Size     Size     `json:"size"`
	Priority Priority `json:"priority"`
	OrgID    string   `json:"org_id,omitempty"`
	TagIDs   []string `json:"tag_ids,omitempty"`
	Notes    string   `json:"notes,omitempty"`

	Recurrence      Recurrence     `json:"recurrence"`
	CustomDays      []time.Weekday `json:"custom_days,omitempty"`
	ScheduledTime   string         `json:"scheduled_time,omitempty"` // "HH:MM"
	AutoComplete    bool           `json:"auto_complete"`
	DurationMinutes int            `json:"duration_minutes,omitempty"`
	LastRecurrence  *time.Time     `json:"last_recurrence,omitempty"`

	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Quality       Quality    `json:"quality"`
	ReopenedCount int        `json:"reopened_count"`
	Archived      bool       `json:"archived"`

	TimerRunning   bool       `json:"timer_running"`
	TimerStartedAt *time.Time `json:"timer_started_at,omitempty"`
	TimeSpent      int        `json:"time_spent"` // seconds
	Sessions       []Session  `json:"sessions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State derives the timer state for a task
func (t *Task) State() TimerState {
	switch {
	case t.Completed:
		return StateCompleted
	case t.TimerRunning:
		return StateRunning
	case t.TimeSpent > 0:
		return StatePaused
	default:
		return StateIdle
	}
}

// EstimatedHours returns the hour estimate implied by the task's size
func (t *Task) EstimatedHours() float64 {
	if h, ok := sizeHours[t.Size]; ok {
		return h
	}
	return sizeHours[SizeM]
}

// Points returns the weighted complexity points (size points x priority multiplier)
func (t *Task) Points() float64 {
	pts, ok := sizePoints[t.Size]
	if !ok {
		pts = sizePoints[SizeM]
	}
	mult, ok := priorityMultiplier[t.Priority]
	if !ok {
		mult = priorityMultiplier[PriorityMedium]
	}
	return pts * mult
}

// Age returns how long the task has existed, in fractional days
func (t *Task) Age(now time.Time) float64 {
	return now.Sub(t.CreatedAt).Hours() / 24
}

// IsStale reports whether the task has been open for two or more days
func (t *Task) IsStale(now time.Time) bool {
	return !t.Completed && t.Age(now) >= 2
}

// Score maps a quality rating to its numeric score; unrated yields 0
func (q Quality) Score() float64 {
	return qualityScore[q]
}

// ValidTaskType reports whether v is a known task type
func ValidTaskType(v TaskType) bool {
	switch v {
	case TypeFeature, TypeBug, TypeSupport, TypeLearning,
		TypeStandup, TypeMeeting, TypeAnalysis, TypeDocumentation:
		return true
	}
	return false
}

// ValidSize reports whether v is a known size
func ValidSize(v Size) bool {
	_, ok := sizeHours[v]
	return ok
}

// ValidQuality reports whether v is a rateable quality value
func ValidQuality(v Quality) bool {
	_, ok := qualityScore[v]
	return ok
}
