package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kolisa/Daily-task-manager/internal/app"
	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/quickadd"
	"github.com/kolisa/Daily-task-manager/internal/sweep"
	"github.com/kolisa/Daily-task-manager/internal/ui/theme"
	"github.com/kolisa/Daily-task-manager/internal/ui/views"
)

const sweepInterval = time.Minute

// RootModel is the main application model that manages views and owns
// the canonical task snapshot
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	tasks   []model.Task
	orgs    []model.Organization
	markers sweep.Markers

	currentView   View
	tasksView     views.TasksView
	dashboardView views.DashboardView
	focusView     views.FocusView
	helpVisible   bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	exclusive := application.Config.ExclusiveTimer
	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		markers:       sweep.Markers{},
		currentView:   ViewTasks,
		tasksView:     views.NewTasksView(exclusive),
		dashboardView: views.NewDashboardView(application.Config.WeeklyTargetHours),
		focusView:     views.NewFocusView(exclusive),
	}
}

// WithInitialView selects the starting view by name. Unknown names
// keep the default task list.
func (m RootModel) WithInitialView(name string) RootModel {
	switch strings.ToLower(name) {
	case "dashboard", "stats":
		m.currentView = ViewDashboard
	case "focus":
		m.currentView = ViewFocus
	case "tasks", "list":
		m.currentView = ViewTasks
	}
	return m
}

// Init loads state and starts the clock and sweep tickers
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.loadStateCmd(), tickCmd(), sweepTickCmd())
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.tasksView = m.tasksView.SetSize(m.width, contentHeight)
		m.dashboardView = m.dashboardView.SetSize(m.width, contentHeight)
		m.focusView = m.focusView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := false
		switch m.currentView {
		case ViewTasks:
			isInputMode = m.tasksView.IsInputMode()
		case ViewDashboard:
			isInputMode = m.dashboardView.IsInputMode()
		case ViewFocus:
			isInputMode = m.focusView.IsInputMode()
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if isInputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.TasksView):
			m.currentView = ViewTasks
			return m, nil
		case key.Matches(msg, m.keys.DashboardView):
			m.currentView = ViewDashboard
			return m, nil
		case msg.String() == "3":
			m.currentView = ViewFocus
			return m, nil
		}

	case StateLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.tasks = msg.Tasks
		m.orgs = msg.Orgs
		m.markers = msg.Markers
		m = m.fanOutState()
		return m, nil

	case TickMsg:
		now := msg.Time
		m.tasksView = m.tasksView.SetNow(now)
		m.dashboardView = m.dashboardView.SetNow(now)
		m.focusView = m.focusView.SetNow(now)
		return m, tickCmd()

	case SweepTickMsg:
		cmd := m.runSweep(msg.Time)
		m = m.fanOutState()
		return m, tea.Batch(cmd, sweepTickCmd())

	case views.TasksChangedMsg:
		m.tasks = msg.Tasks
		m = m.fanOutState()
		return m, m.saveTasksCmd(m.tasks)

	case views.AddTaskMsg:
		cmd := m.addTask(msg.Line)
		m = m.fanOutState()
		return m, cmd

	case views.TaskDeletedMsg:
		var kept []model.Task
		for _, t := range m.tasks {
			if t.ID != msg.TaskID {
				kept = append(kept, t)
			}
		}
		m.tasks = kept
		m = m.fanOutState()
		id := msg.TaskID
		return m, func() tea.Msg {
			if err := m.app.DB.DeleteTask(id); err != nil {
				return ErrorMsg{Err: err}
			}
			return StatusMsg{Message: "Task deleted"}
		}

	case views.FocusRequestMsg:
		m.focusView = m.focusView.SetTask(msg.TaskID)
		m.currentView = ViewFocus
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		m.app.Logger.Error("ui error", "err", msg.Err)
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	// Delegate to current view
	switch m.currentView {
	case ViewTasks:
		newView, cmd := m.tasksView.Update(msg)
		m.tasksView = newView
		cmds = append(cmds, cmd)
	case ViewDashboard:
		newView, cmd := m.dashboardView.Update(msg)
		m.dashboardView = newView
		cmds = append(cmds, cmd)
	case ViewFocus:
		newView, cmd := m.focusView.Update(msg)
		m.focusView = newView
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// fanOutState pushes the canonical snapshot into every view
func (m RootModel) fanOutState() RootModel {
	m.tasksView = m.tasksView.SetState(m.tasks, m.orgs)
	m.dashboardView = m.dashboardView.SetState(m.tasks, m.orgs)
	m.focusView = m.focusView.SetState(m.tasks, m.orgs)
	return m
}

// runSweep executes the per-minute pass and returns the cmd that
// persists its outcome and delivers notifications
func (m *RootModel) runSweep(now time.Time) tea.Cmd {
	tasks, markers, events := sweep.Run(m.tasks, m.markers, now, sweep.Config{
		MorningReminder: m.app.Config.MorningReminder,
		Exclusive:       m.app.Config.ExclusiveTimer,
	})
	m.tasks = tasks
	m.markers = markers

	if len(events) == 0 {
		return nil
	}

	application := m.app
	return func() tea.Msg {
		if err := application.DB.SaveTasks(tasks); err != nil {
			return ErrorMsg{Err: err}
		}
		if err := application.DB.SaveMarkers(markers); err != nil {
			return ErrorMsg{Err: err}
		}
		for _, e := range events {
			application.Logger.Info("sweep event", "kind", e.Kind, "task", e.Task.Title)
			if err := application.Notifier.SendSweepEvent(e); err != nil {
				application.Logger.Warn("notification failed", "err", err)
			}
		}
		return nil
	}
}

// addTask parses a quick-add line, resolves tags and persists the task
func (m *RootModel) addTask(line string) tea.Cmd {
	parsed := quickadd.Parse(line, m.orgs, time.Now())
	if parsed.Task.Title == "" {
		return func() tea.Msg { return ErrorMsg{Err: fmt.Errorf("task needs a title")} }
	}

	application := m.app
	task := parsed.Task
	for _, name := range parsed.TagNames {
		tag, err := application.DB.GetOrCreateTag(name)
		if err != nil {
			application.Logger.Warn("tag resolution failed", "tag", name, "err", err)
			continue
		}
		task.TagIDs = append(task.TagIDs, tag.ID)
	}

	m.tasks = append(m.tasks, task)
	tasks := m.tasks
	title := task.Title
	return func() tea.Msg {
		if err := application.DB.SaveTasks(tasks); err != nil {
			return ErrorMsg{Err: err}
		}
		return StatusMsg{Message: fmt.Sprintf("Added %q", title)}
	}
}

func (m RootModel) loadStateCmd() tea.Cmd {
	application := m.app
	return func() tea.Msg {
		tasks, err := application.DB.LoadTasks()
		if err != nil {
			return StateLoadedMsg{Err: err}
		}
		orgs, err := application.DB.GetOrganizations()
		if err != nil {
			return StateLoadedMsg{Err: err}
		}
		tags, err := application.DB.GetTags()
		if err != nil {
			return StateLoadedMsg{Err: err}
		}
		markers, err := application.DB.LoadMarkers()
		if err != nil {
			return StateLoadedMsg{Err: err}
		}
		return StateLoadedMsg{Tasks: tasks, Orgs: orgs, Tags: tags, Markers: markers}
	}
}

func (m RootModel) saveTasksCmd(tasks []model.Task) tea.Cmd {
	application := m.app
	return func() tea.Msg {
		if err := application.DB.SaveTasks(tasks); err != nil {
			return ErrorMsg{Err: err}
		}
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func sweepTickCmd() tea.Cmd {
	return tea.Tick(sweepInterval, func(t time.Time) tea.Msg {
		return SweepTickMsg{Time: t}
	})
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewTasks:
			content = m.tasksView.View()
		case ViewDashboard:
			content = m.dashboardView.View()
		case ViewFocus:
			content = m.focusView.View()
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("dailytask")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	// Running-timer indicator stays visible across views
	var running string
	for _, task := range m.tasks {
		if task.TimerRunning {
			running = styles.Timer.Render("▶ " + task.Title)
			break
		}
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	rightSide := running

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the status line and context-aware key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch m.currentView {
	case ViewTasks:
		if m.tasksView.IsInputMode() {
			line1 = key("enter", "confirm") + sep + key("esc", "cancel")
		} else {
			line1 = key("a", "add") + sep +
				key("space", "start/pause") + sep +
				key("s", "stop") + sep +
				key("tab", "done") + sep +
				key("r", "rate") + sep +
				key("f", "focus")
			line2 = key("enter", "edit") + sep +
				key("d", "delete") + sep +
				key("x", "archive") + sep +
				key("c", "completed") + sep +
				key("o", "org") + sep +
				key("1-3", "views") + sep +
				key("?", "help")
		}

	case ViewDashboard:
		line1 = key("t", "today") + sep +
			key("w", "week") + sep +
			key("A", "all time")
		line2 = key("1-3", "views") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")

	case ViewFocus:
		if m.focusView.IsTimerRunning() {
			line1 = key("space", "pause") + sep + key("s", "stop")
		} else {
			line1 = key("space", "start") + sep + key("s", "stop")
		}
		line2 = key("1-3", "views") + sep +
			key("esc", "back") + sep +
			key("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Dailytask Help"))
	b.WriteString("\n\n")

	section := func(name string, rows [][]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kv := range rows {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Navigation", [][]string{
		{"↑/k ↓/j", "Move up/down"},
		{"g / G", "Go to top/bottom"},
		{"1 / 2 / 3", "Tasks / Dashboard / Focus"},
	})

	section("Timers", [][]string{
		{"space", "Start or pause the timer"},
		{"s", "Stop (complete) the task"},
		{"tab", "Toggle done without stopping"},
		{"r", "Rate quality of a completed task"},
		{"f", "Open task in focus view"},
	})

	section("Tasks", [][]string{
		{"a", "Add via quick-add line"},
		{"enter", "Edit title"},
		{"d", "Delete"},
		{"x", "Archive"},
		{"c", "Show/hide completed"},
		{"o", "Cycle organization filter"},
	})

	section("Quick-add syntax", [][]string{
		{"@org", "Assign organization"},
		{"!high", "Priority (high/medium/low)"},
		{"#bug", "Type, or tag if not a type"},
		{"~l", "Size (xs s m l xl xxl)"},
		{"+09:00", "Scheduled auto-start time"},
		{"every:weekdays", "Recurrence pattern"},
		{"for:30m", "Fixed duration, auto-complete"},
	})

	section("Dashboard", [][]string{
		{"t / w / A", "Today / week / all-time window"},
	})

	section("System", [][]string{
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? to close"))

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
