package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kolisa/Daily-task-manager/internal/metrics"
	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/ui/theme"
)

// DashboardView renders the productivity report for a selected window
type DashboardView struct {
	width  int
	height int

	tasks  []model.Task
	orgs   []model.Organization
	now    time.Time
	window metrics.Window
	target float64

	report metrics.Report
	dirty  bool
}

// NewDashboardView creates the dashboard view
func NewDashboardView(weeklyTargetHours float64) DashboardView {
	return DashboardView{
		now:    time.Now(),
		window: metrics.WindowToday,
		target: weeklyTargetHours,
		dirty:  true,
	}
}

// Init satisfies the view contract
func (v DashboardView) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

// SetState replaces the working snapshot
func (v DashboardView) SetState(tasks []model.Task, orgs []model.Organization) DashboardView {
	v.tasks = tasks
	v.orgs = orgs
	v.dirty = true
	return v
}

// SetNow advances the clock; the report recomputes lazily on render
func (v DashboardView) SetNow(now time.Time) DashboardView {
	v.now = now
	v.dirty = true
	return v
}

// IsInputMode reports whether keystrokes should go to a text input
func (v DashboardView) IsInputMode() bool {
	return false
}

// Update handles messages
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "t":
		v.window = metrics.WindowToday
		v.dirty = true
	case "w":
		v.window = metrics.WindowWeek
		v.dirty = true
	case "A":
		v.window = metrics.WindowAll
		v.dirty = true
	}
	return v, nil
}

func (v *DashboardView) compute() {
	if !v.dirty {
		return
	}
	v.report = metrics.Compute(metrics.Params{
		Tasks:             v.tasks,
		Orgs:              v.orgs,
		Window:            v.window,
		Now:               v.now,
		WeeklyTargetHours: v.target,
	})
	v.dirty = false
}

// View renders the dashboard
func (v DashboardView) View() string {
	v.compute()
	styles := theme.Current.Styles
	t := theme.Current.Theme
	r := v.report

	var b strings.Builder

	// Headline: window selector and the composite score
	windows := []metrics.Window{metrics.WindowToday, metrics.WindowWeek, metrics.WindowAll}
	var tabs []string
	for _, w := range windows {
		label := w.String()
		if w == v.window {
			tabs = append(tabs, styles.Score.Render("["+label+"]"))
		} else {
			tabs = append(tabs, styles.Label.Render(" "+label+" "))
		}
	}
	score := fmt.Sprintf("productivity %d/100", r.ProductivityScore)
	b.WriteString(strings.Join(tabs, " ") + "   " + v.scoreStyle().Render(score))
	b.WriteString("\n\n")

	// Completion and time
	b.WriteString(styles.PanelTitle.Render("Output"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  tasks       %d/%d done (%.0f%%)\n", r.CompletedTasks, r.TotalTasks, r.CompletionRate))
	b.WriteString(fmt.Sprintf("  points      %.1f/%.1f (%.0f%% weighted)  velocity %.1f/day\n",
		r.CompletedPoints, r.TotalPoints, r.WeightedCompletionRate, r.Velocity))
	b.WriteString(fmt.Sprintf("  tracked     %s  work %s  learning %s  meetings %s (%.0f%%)\n",
		formatDuration(r.TotalTime), formatDuration(r.WorkTime),
		formatDuration(r.LearningTime), formatDuration(r.MeetingTime), r.MeetingRatio))

	progress := renderBar(r.WorkHoursProgress, 24)
	b.WriteString(fmt.Sprintf("  work target %s %.0f%% of %s\n",
		progress, r.WorkHoursProgress, formatDuration(r.WorkHoursTarget)))
	b.WriteString("\n")

	// Sub-scores
	b.WriteString(styles.PanelTitle.Render("Quality"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  avg rating  %.1f/5 (%d rated, %d unrated)\n", r.AvgQualityScore, r.RatedTasks, r.UnratedTasks))
	b.WriteString(fmt.Sprintf("  estimation  %.0f%%   first-time %.0f%%   bug ratio %.0f%%\n",
		r.EstimationAccuracy, r.FirstTimeRate, r.BugRatio))
	b.WriteString(fmt.Sprintf("  focus       %.0f   deep-work +%.1f   switching -%.1f   consistency %.0f\n",
		r.FocusScore, r.DeepWorkBonus, r.ContextSwitchPenalty, r.ConsistencyScore))
	b.WriteString("\n")

	// Streaks
	b.WriteString(styles.PanelTitle.Render("Streaks"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  completion %s   learning %s   zero-bug %s\n",
		streakLabel(r.CompletionStreak), streakLabel(r.LearningStreak), streakLabel(r.ZeroBugStreak)))
	b.WriteString("\n")

	// Type breakdown, busiest first
	b.WriteString(styles.PanelTitle.Render("By type"))
	b.WriteString("\n  ")
	type typeCount struct {
		t model.TaskType
		n int
	}
	var counts []typeCount
	for typ, n := range r.TypeBreakdown {
		if n > 0 {
			counts = append(counts, typeCount{typ, n})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].t < counts[j].t
	})
	if len(counts) == 0 {
		b.WriteString(styles.Label.Render("nothing yet"))
	}
	for i, c := range counts {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(fmt.Sprintf("%s %d", c.t, c.n))
	}
	b.WriteString("\n\n")

	// Organizations
	b.WriteString(styles.PanelTitle.Render("Organizations"))
	b.WriteString("\n")
	for _, os := range r.OrgStats {
		if os.Total == 0 {
			continue
		}
		name := lipgloss.NewStyle().Foreground(t.OrgColor(os.Org.Category)).Render(os.Org.Label)
		b.WriteString(fmt.Sprintf("  %-24s %d tasks, %d done (%.0f%%), %s",
			name, os.Total, os.Completed, os.CompletionRate, formatDuration(os.TimeSpent)))
		if os.Stale > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Warning).Render(fmt.Sprintf("  %d stale", os.Stale)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Insights
	insights := metrics.Insights(r)
	if len(insights) > 0 {
		b.WriteString(styles.PanelTitle.Render("Insights"))
		b.WriteString("\n")
		for _, in := range insights {
			mark := lipgloss.NewStyle().Foreground(t.Warning).Render("!")
			if in.Good {
				mark = lipgloss.NewStyle().Foreground(t.Success).Render("+")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n", mark, styles.Score.Render(in.Title), styles.Label.Render(in.Body)))
		}
	}

	return b.String()
}

func (v DashboardView) scoreStyle() lipgloss.Style {
	t := theme.Current.Theme
	switch {
	case v.report.ProductivityScore >= 80:
		return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	case v.report.ProductivityScore >= 50:
		return lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	}
}

func streakLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func renderBar(percent float64, width int) string {
	t := theme.Current.Theme
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(t.Primary).Render(bar)
}

func formatDuration(seconds int) string {
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
