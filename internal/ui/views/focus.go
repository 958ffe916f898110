package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kolisa/Daily-task-manager/internal/metrics"
	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/timer"
	"github.com/kolisa/Daily-task-manager/internal/ui/theme"
)

// FocusView is a distraction-free single-task timer
type FocusView struct {
	width  int
	height int

	tasks     []model.Task
	orgs      []model.Organization
	taskID    string
	now       time.Time
	exclusive bool

	rating bool
}

// NewFocusView creates the focus view
func NewFocusView(exclusive bool) FocusView {
	return FocusView{
		now:       time.Now(),
		exclusive: exclusive,
	}
}

// Init satisfies the view contract
func (v FocusView) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (v FocusView) SetSize(width, height int) FocusView {
	v.width = width
	v.height = height
	return v
}

// SetState replaces the working snapshot
func (v FocusView) SetState(tasks []model.Task, orgs []model.Organization) FocusView {
	v.tasks = tasks
	v.orgs = orgs
	return v
}

// SetNow advances the timer display clock
func (v FocusView) SetNow(now time.Time) FocusView {
	v.now = now
	return v
}

// SetTask points the view at a task
func (v FocusView) SetTask(id string) FocusView {
	v.taskID = id
	v.rating = false
	return v
}

// IsInputMode reports whether keystrokes should go to a text input
func (v FocusView) IsInputMode() bool {
	return false
}

// IsTimerRunning reports whether the focused task's timer is running
func (v FocusView) IsTimerRunning() bool {
	t, ok := v.task()
	return ok && t.TimerRunning
}

func (v FocusView) task() (model.Task, bool) {
	for _, t := range v.tasks {
		if t.ID == v.taskID {
			return t, true
		}
	}
	return model.Task{}, false
}

// Update handles messages
func (v FocusView) Update(msg tea.Msg) (FocusView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	task, ok := v.task()
	if !ok {
		return v, nil
	}

	if v.rating {
		ratings := map[string]model.Quality{
			"1": model.QualityExcellent,
			"2": model.QualityGood,
			"3": model.QualityAverage,
			"4": model.QualityPoor,
		}
		if q, found := ratings[keyMsg.String()]; found {
			v.tasks = timer.RateQuality(v.tasks, task.ID, q, v.now)
			v.rating = false
			return v, changed(v.tasks)
		}
		if keyMsg.String() == "esc" {
			v.rating = false
		}
		return v, nil
	}

	switch keyMsg.String() {
	case " ":
		if task.TimerRunning {
			v.tasks = timer.Pause(v.tasks, task.ID, v.now)
		} else {
			v.tasks = timer.Start(v.tasks, task.ID, v.now, timer.Options{Exclusive: v.exclusive})
		}
		return v, changed(v.tasks)

	case "s":
		if !task.Completed {
			v.tasks = timer.Stop(v.tasks, task.ID, v.now)
			if task.Quality == model.QualityUnrated || task.Quality == "" {
				v.rating = true
			}
			return v, changed(v.tasks)
		}
	}

	return v, nil
}

// View renders the focus screen
func (v FocusView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	task, ok := v.task()
	if !ok {
		return styles.Label.Render("No task in focus. Press 'f' on a task in the list.")
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render(task.Title))
	b.WriteString("\n")

	var meta []string
	meta = append(meta, "#"+string(task.Type), string(task.Size), string(task.Priority))
	if org, found := model.OrgByID(v.orgs, task.OrgID); found {
		meta = append(meta, lipgloss.NewStyle().Foreground(t.OrgColor(org.Category)).Render("@"+org.ID))
	}
	b.WriteString(styles.Label.Render(strings.Join(meta, "  ")))
	b.WriteString("\n\n")

	// Big elapsed clock
	elapsed := timer.Elapsed(task, v.now)
	clockStyle := lipgloss.NewStyle().Foreground(t.StateColor(task.State())).Bold(true)
	b.WriteString(clockStyle.Render(formatClock(elapsed)))
	b.WriteString(styles.Label.Render("  " + stateName(task.State())))
	b.WriteString("\n\n")

	cmp := metrics.CompareEstimate(task, v.now)
	budget := fmt.Sprintf("%s of %s estimated", formatHours(cmp.ActualHours), formatHours(cmp.EstimatedHours))
	if cmp.OverBudget {
		budget += fmt.Sprintf("  (%.0f%%)", cmp.Percentage)
		b.WriteString(lipgloss.NewStyle().Foreground(t.Warning).Render(budget))
	} else {
		b.WriteString(styles.Label.Render(budget))
	}
	b.WriteString("\n")
	b.WriteString(renderBar(cmp.Percentage, 32))
	b.WriteString("\n\n")

	if len(task.Sessions) > 0 {
		b.WriteString(styles.PanelTitle.Render(fmt.Sprintf("Sessions (%d)", len(task.Sessions))))
		b.WriteString("\n")
		shown := task.Sessions
		if len(shown) > 8 {
			shown = shown[len(shown)-8:]
		}
		for _, s := range shown {
			b.WriteString(fmt.Sprintf("  %s - %s  %s\n",
				s.Start.Format("Mon 15:04"), s.End.Format("15:04"), formatDuration(s.Duration)))
		}
		b.WriteString("\n")
	}

	if task.Notes != "" {
		b.WriteString(styles.Subtitle.Render(task.Notes))
		b.WriteString("\n\n")
	}

	if v.rating {
		b.WriteString(styles.PanelTitle.Render("Rate quality: 1 excellent  2 good  3 average  4 poor  esc skip"))
		b.WriteString("\n")
	}

	return b.String()
}

func stateName(s model.TimerState) string {
	switch s {
	case model.StateRunning:
		return "running"
	case model.StatePaused:
		return "paused"
	case model.StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

func formatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
