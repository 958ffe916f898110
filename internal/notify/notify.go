package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/sweep"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Timeout in milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "dailytask")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// SendSimple sends a simple notification with title and body
func (n *Notifier) SendSimple(title, body string) error {
	return n.Send(Notification{
		Title:   title,
		Body:    body,
		Urgency: UrgencyNormal,
		Timeout: 5 * time.Second,
	})
}

// SendSweepEvent maps a sweep event to the matching desktop notification
func (n *Notifier) SendSweepEvent(e sweep.Event) error {
	switch e.Kind {
	case sweep.EventAutoStarted:
		return n.SendAutoStarted(e.Task)
	case sweep.EventAutoCompleted:
		return n.SendAutoCompleted(e.Task)
	case sweep.EventRecurrenceSpawned:
		return n.SendRecurrenceSpawned(e.Task)
	case sweep.EventStaleTask:
		return n.SendStaleTask(e.Task)
	case sweep.EventMorningReminder:
		return n.SendMorningReminder()
	}
	return nil
}

// SendAutoStarted announces a scheduled task's timer kicking off
func (n *Notifier) SendAutoStarted(t model.Task) error {
	return n.Send(Notification{
		Title:   "Timer started",
		Body:    t.Title,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "media-playback-start-symbolic",
	})
}

// SendAutoCompleted announces a fixed-duration task finishing
func (n *Notifier) SendAutoCompleted(t model.Task) error {
	body := t.Title
	if t.DurationMinutes > 0 {
		body = fmt.Sprintf("%s (%d min)", t.Title, t.DurationMinutes)
	}
	return n.Send(Notification{
		Title:   "Task completed",
		Body:    body,
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "alarm-symbolic",
	})
}

// SendRecurrenceSpawned announces a fresh instance of a recurring task
func (n *Notifier) SendRecurrenceSpawned(t model.Task) error {
	return n.Send(Notification{
		Title:   "Recurring task added",
		Body:    t.Title,
		Urgency: UrgencyLow,
		Timeout: 5 * time.Second,
		Icon:    "view-refresh-symbolic",
	})
}

// SendStaleTask nags about a task sitting open for days
func (n *Notifier) SendStaleTask(t model.Task) error {
	return n.Send(Notification{
		Title:   "Stale task",
		Body:    fmt.Sprintf("%q has been open for %.0f days", t.Title, t.Age(time.Now())),
		Urgency: UrgencyNormal,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}

// SendMorningReminder prompts the daily planning pass
func (n *Notifier) SendMorningReminder() error {
	return n.Send(Notification{
		Title:   "Plan your day",
		Body:    "Review today's tasks and set your priorities.",
		Urgency: UrgencyNormal,
		Timeout: 15 * time.Second,
		Icon:    "appointment-soon-symbolic",
	})
}
