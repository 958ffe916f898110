package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kolisa/Daily-task-manager/internal/metrics"
	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/timer"
	"github.com/kolisa/Daily-task-manager/internal/ui/theme"
)

// TasksMode represents the current input mode of the tasks view
type TasksMode int

const (
	TasksModeNormal TasksMode = iota
	TasksModeAdd
	TasksModeEdit
	TasksModeRate
	TasksModeConfirmDelete
)

// TasksView is the main task list: timers, completion, quality ratings
type TasksView struct {
	width  int
	height int

	tasks []model.Task
	orgs  []model.Organization
	now   time.Time

	cursor        int
	scrollOffset  int
	showCompleted bool
	orgFilter     string
	exclusive     bool

	mode      TasksMode
	input     textinput.Model
	editingID string
	ratingID  string
	deleteID  string
}

// NewTasksView creates the tasks view
func NewTasksView(exclusive bool) TasksView {
	input := textinput.New()
	input.Placeholder = "title @org !priority #type ~size +HH:MM every:pattern for:30m"
	input.CharLimit = 200

	return TasksView{
		now:           time.Now(),
		showCompleted: true,
		exclusive:     exclusive,
		input:         input,
	}
}

// Init satisfies the view contract; state arrives via SetState
func (v TasksView) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (v TasksView) SetSize(width, height int) TasksView {
	v.width = width
	v.height = height
	v.input.Width = width - 8
	return v
}

// SetState replaces the working snapshot
func (v TasksView) SetState(tasks []model.Task, orgs []model.Organization) TasksView {
	v.tasks = tasks
	v.orgs = orgs
	v.clampCursor()
	return v
}

// SetNow advances the clock used for elapsed displays
func (v TasksView) SetNow(now time.Time) TasksView {
	v.now = now
	return v
}

// IsInputMode reports whether keystrokes should go to a text input
func (v TasksView) IsInputMode() bool {
	return v.mode == TasksModeAdd || v.mode == TasksModeEdit
}

// Selected returns the task under the cursor
func (v TasksView) Selected() (model.Task, bool) {
	visible := v.visible()
	if v.cursor < 0 || v.cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[v.cursor], true
}

// visible filters and orders the snapshot for display: active tasks
// first, completed at the bottom, archived hidden
func (v TasksView) visible() []model.Task {
	var active, done []model.Task
	for _, t := range v.tasks {
		if t.Archived {
			continue
		}
		if v.orgFilter != "" && t.OrgID != v.orgFilter {
			continue
		}
		if t.Completed {
			done = append(done, t)
		} else {
			active = append(active, t)
		}
	}
	if !v.showCompleted {
		return active
	}
	return append(active, done...)
}

func (v *TasksView) clampCursor() {
	n := len(v.visible())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// Update handles messages
func (v TasksView) Update(msg tea.Msg) (TasksView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch v.mode {
	case TasksModeAdd, TasksModeEdit:
		return v.updateInput(keyMsg)
	case TasksModeRate:
		return v.updateRate(keyMsg)
	case TasksModeConfirmDelete:
		return v.updateConfirmDelete(keyMsg)
	}
	return v.updateNormal(keyMsg)
}

func (v TasksView) updateNormal(msg tea.KeyMsg) (TasksView, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.visible())-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = len(v.visible()) - 1
		if v.cursor < 0 {
			v.cursor = 0
		}

	case "a":
		v.mode = TasksModeAdd
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink

	case "enter":
		if t, ok := v.Selected(); ok {
			v.mode = TasksModeEdit
			v.editingID = t.ID
			v.input.SetValue(t.Title)
			v.input.Focus()
			return v, textinput.Blink
		}

	case " ":
		if t, ok := v.Selected(); ok {
			if t.TimerRunning {
				v.tasks = timer.Pause(v.tasks, t.ID, v.now)
			} else {
				v.tasks = timer.Start(v.tasks, t.ID, v.now, timer.Options{Exclusive: v.exclusive})
			}
			return v, changed(v.tasks)
		}

	case "s":
		if t, ok := v.Selected(); ok && !t.Completed {
			v.tasks = timer.Stop(v.tasks, t.ID, v.now)
			if t.Quality == model.QualityUnrated || t.Quality == "" {
				v.mode = TasksModeRate
				v.ratingID = t.ID
			}
			return v, changed(v.tasks)
		}

	case "tab":
		if t, ok := v.Selected(); ok {
			wasCompleted := t.Completed
			v.tasks = timer.ToggleComplete(v.tasks, t.ID, v.now)
			if !wasCompleted && (t.Quality == model.QualityUnrated || t.Quality == "") {
				v.mode = TasksModeRate
				v.ratingID = t.ID
			}
			return v, changed(v.tasks)
		}

	case "r":
		if t, ok := v.Selected(); ok && t.Completed {
			v.mode = TasksModeRate
			v.ratingID = t.ID
		}

	case "d":
		if t, ok := v.Selected(); ok {
			v.mode = TasksModeConfirmDelete
			v.deleteID = t.ID
		}

	case "x":
		if t, ok := v.Selected(); ok {
			for i := range v.tasks {
				if v.tasks[i].ID == t.ID {
					v.tasks[i].Archived = true
					v.tasks[i].UpdatedAt = v.now
				}
			}
			v.clampCursor()
			return v, changed(v.tasks)
		}

	case "c":
		v.showCompleted = !v.showCompleted
		v.clampCursor()

	case "o":
		v.orgFilter = nextOrgFilter(v.orgs, v.orgFilter)
		v.clampCursor()

	case "f":
		if t, ok := v.Selected(); ok {
			return v, func() tea.Msg { return FocusRequestMsg{TaskID: t.ID} }
		}
	}

	return v, nil
}

func (v TasksView) updateInput(msg tea.KeyMsg) (TasksView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		line := strings.TrimSpace(v.input.Value())
		mode := v.mode
		editingID := v.editingID
		v.mode = TasksModeNormal
		v.editingID = ""
		v.input.Blur()
		if line == "" {
			return v, nil
		}
		if mode == TasksModeAdd {
			return v, func() tea.Msg { return AddTaskMsg{Line: line} }
		}
		for i := range v.tasks {
			if v.tasks[i].ID == editingID {
				v.tasks[i].Title = line
				v.tasks[i].UpdatedAt = v.now
			}
		}
		return v, changed(v.tasks)

	case "esc":
		v.mode = TasksModeNormal
		v.editingID = ""
		v.input.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v TasksView) updateRate(msg tea.KeyMsg) (TasksView, tea.Cmd) {
	ratings := map[string]model.Quality{
		"1": model.QualityExcellent,
		"2": model.QualityGood,
		"3": model.QualityAverage,
		"4": model.QualityPoor,
	}
	if q, ok := ratings[msg.String()]; ok {
		v.tasks = timer.RateQuality(v.tasks, v.ratingID, q, v.now)
		v.mode = TasksModeNormal
		v.ratingID = ""
		return v, changed(v.tasks)
	}
	if msg.String() == "esc" {
		v.mode = TasksModeNormal
		v.ratingID = ""
	}
	return v, nil
}

func (v TasksView) updateConfirmDelete(msg tea.KeyMsg) (TasksView, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := v.deleteID
		var kept []model.Task
		for _, t := range v.tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		v.tasks = kept
		v.mode = TasksModeNormal
		v.deleteID = ""
		v.clampCursor()
		return v, func() tea.Msg { return TaskDeletedMsg{TaskID: id} }
	case "n", "esc":
		v.mode = TasksModeNormal
		v.deleteID = ""
	}
	return v, nil
}

// View renders the task list
func (v TasksView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	visible := v.visible()
	var b strings.Builder

	var open int
	for _, task := range visible {
		if !task.Completed {
			open++
		}
	}
	header := fmt.Sprintf("%d open, %d total", open, len(visible))
	if v.orgFilter != "" {
		label := v.orgFilter
		if org, ok := model.OrgByID(v.orgs, v.orgFilter); ok {
			label = org.Label
		}
		header += "  @" + label
	}
	b.WriteString(styles.Label.Render(header))
	b.WriteString("\n\n")

	if len(visible) == 0 {
		b.WriteString(styles.Label.Render("No tasks. Press 'a' to add one."))
		return b.String()
	}

	maxRows := v.height - 4
	if maxRows < 1 {
		maxRows = 1
	}
	start := v.scrollOffset
	if v.cursor < start {
		start = v.cursor
	}
	if v.cursor >= start+maxRows {
		start = v.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(visible) {
		end = len(visible)
	}

	for i := start; i < end; i++ {
		b.WriteString(v.renderRow(visible[i], i == v.cursor))
		b.WriteString("\n")
	}

	switch v.mode {
	case TasksModeAdd:
		b.WriteString("\n")
		b.WriteString(styles.InputFocused.Render(v.input.View()))
	case TasksModeEdit:
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("edit title"))
		b.WriteString("\n")
		b.WriteString(styles.InputFocused.Render(v.input.View()))
	case TasksModeRate:
		b.WriteString("\n")
		b.WriteString(styles.PanelTitle.Render("Rate quality: 1 excellent  2 good  3 average  4 poor  esc skip"))
	case TasksModeConfirmDelete:
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Error).Render("Delete task? y/n"))
	}

	return b.String()
}

func (v TasksView) renderRow(task model.Task, selected bool) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	icon := stateIcon(task.State())
	iconStyle := lipgloss.NewStyle().Foreground(t.StateColor(task.State()))

	title := task.Title
	titleStyle := styles.TaskNormal
	switch {
	case task.Completed:
		titleStyle = styles.TaskDone
	case task.TimerRunning:
		titleStyle = styles.TaskRunning
	case task.IsStale(v.now):
		titleStyle = styles.TaskStale
	}

	prioMark := "m"
	if task.Priority != "" {
		prioMark = string(task.Priority[0])
	}
	prio := lipgloss.NewStyle().Foreground(t.PriorityColor(task.Priority)).Render(prioMark)

	var orgLabel string
	if org, ok := model.OrgByID(v.orgs, task.OrgID); ok {
		orgLabel = lipgloss.NewStyle().Foreground(t.OrgColor(org.Category)).
			Render("@" + org.ID)
	}

	cmp := metrics.CompareEstimate(task, v.now)
	timeCol := fmt.Sprintf("%s/%s", formatHours(cmp.ActualHours), formatHours(cmp.EstimatedHours))
	timeStyle := styles.Label
	if cmp.OverBudget {
		timeStyle = lipgloss.NewStyle().Foreground(t.Warning)
	}

	var badges []string
	if task.Recurrence != model.RecurNone && task.Recurrence != "" {
		badges = append(badges, "↻")
	}
	if task.ScheduledTime != "" {
		badges = append(badges, task.ScheduledTime)
	}
	if task.IsStale(v.now) {
		badges = append(badges, fmt.Sprintf("stale %dd", int(task.Age(v.now))))
	}
	if task.Completed && task.Quality != model.QualityUnrated && task.Quality != "" {
		badges = append(badges, string(task.Quality))
	}

	cursor := "  "
	if selected {
		cursor = styles.Score.Render("> ")
		titleStyle = styles.TaskSelected
	}

	parts := []string{
		cursor,
		iconStyle.Render(icon),
		prio,
		styles.Label.Render(string(task.Size)),
		titleStyle.Render(title),
		orgLabel,
		styles.Label.Render("#" + string(task.Type)),
		timeStyle.Render(timeCol),
	}
	if len(badges) > 0 {
		parts = append(parts, styles.Subtitle.Render(strings.Join(badges, " ")))
	}

	return strings.Join(parts, " ")
}

func stateIcon(s model.TimerState) string {
	switch s {
	case model.StateRunning:
		return "▶"
	case model.StatePaused:
		return "⏸"
	case model.StateCompleted:
		return "✓"
	default:
		return "○"
	}
}

func formatHours(h float64) string {
	if h >= 1 {
		return fmt.Sprintf("%.1fh", h)
	}
	return fmt.Sprintf("%.0fm", h*60)
}

// nextOrgFilter cycles all -> each organization -> all
func nextOrgFilter(orgs []model.Organization, current string) string {
	if current == "" {
		if len(orgs) == 0 {
			return ""
		}
		return orgs[0].ID
	}
	for i, o := range orgs {
		if o.ID == current {
			if i == len(orgs)-1 {
				return ""
			}
			return orgs[i+1].ID
		}
	}
	return ""
}

func changed(tasks []model.Task) tea.Cmd {
	return func() tea.Msg { return TasksChangedMsg{Tasks: tasks} }
}
