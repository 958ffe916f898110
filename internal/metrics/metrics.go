// Package metrics derives productivity reports from task snapshots. Every
// computation is a pure function of (tasks, window, now): same inputs,
// same report. Zero denominators always collapse to documented defaults
// rather than NaN.
package metrics

import (
	"math"
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/timer"
)

// Window selects which tasks enter a report, by creation date
type Window int

const (
	WindowToday Window = iota
	WindowWeek
	WindowAll
)

// String returns the display name for a window
func (w Window) String() string {
	switch w {
	case WindowToday:
		return "today"
	case WindowWeek:
		return "week"
	default:
		return "all"
	}
}

// Targets below are the defaults the original tracker shipped with:
// a 42 hour work week and its pro-rated single day.
const (
	DefaultWeeklyTargetHours = 42.0
	DefaultDailyTargetHours  = 8.4
)

// Composite score weights. Sub-scores are normalized to 0-100 first.
const (
	weightCompletion = 0.20
	weightQuality    = 0.20
	weightEstimation = 0.12
	weightBugRatio   = 0.10
	weightFocus      = 0.10
	weightMeetings   = 0.08
	weightConsistent = 0.10
	weightFirstTime  = 0.10
)

// Params bundles the inputs to Compute
type Params struct {
	Tasks  []model.Task
	Orgs   []model.Organization
	Window Window
	Now    time.Time

	// WeeklyTargetHours overrides the default 42h target when positive
	WeeklyTargetHours float64
}

// OrgStat summarizes one organization's slice of the task list
type OrgStat struct {
	Org            model.Organization
	Total          int
	Completed      int
	Active         int
	Stale          int
	TimeSpent      int // seconds
	CompletionRate float64
}

// Report is the full derived productivity view for one window
type Report struct {
	Window         Window
	TotalTasks     int
	CompletedTasks int
	CompletionRate float64

	TotalTime    int // seconds, elapsed incl. open sessions
	WorkTime     int
	LearningTime int
	MeetingTime  int

	MeetingRatio      float64
	MeetingEfficiency float64

	AvgQualityScore    float64
	RatedTasks         int
	UnratedTasks       int
	EstimationAccuracy float64
	BugRatio           float64

	FocusScore           float64
	DeepWorkBonus        float64
	ContextSwitchPenalty float64

	TotalPoints            float64
	CompletedPoints        float64
	WeightedCompletionRate float64
	Velocity               float64

	CompletionStreak int
	LearningStreak   int
	ZeroBugStreak    int

	ConsistencyScore float64
	FirstTimeRate    float64

	ProductivityScore int

	TypeBreakdown map[model.TaskType]int
	StaleTasks    int

	WorkHoursTarget   int // seconds
	WorkHoursProgress float64

	OrgStats []OrgStat
}

// Compute derives a report for the requested window. Archived tasks are
// expected to be part of the input list; they carry historical weight.
func Compute(p Params) Report {
	inWindow := filterWindow(p.Tasks, p.Window, p.Now)
	r := Report{
		Window:        p.Window,
		TotalTasks:    len(inWindow),
		TypeBreakdown: typeBreakdown(inWindow),
	}

	var completed []model.Task
	for _, t := range inWindow {
		if t.Completed {
			completed = append(completed, t)
		}
		if t.IsStale(p.Now) {
			r.StaleTasks++
		}
	}
	r.CompletedTasks = len(completed)
	if r.TotalTasks > 0 {
		r.CompletionRate = float64(r.CompletedTasks) / float64(r.TotalTasks) * 100
	}

	r.TotalTime, r.WorkTime, r.LearningTime, r.MeetingTime = timeTotals(inWindow, p.Orgs, p.Now)
	if r.TotalTime > 0 {
		r.MeetingRatio = float64(r.MeetingTime) / float64(r.TotalTime) * 100
	}
	r.MeetingEfficiency = meetingEfficiency(r.MeetingRatio)

	r.AvgQualityScore, r.RatedTasks = avgQuality(completed)
	r.UnratedTasks = r.CompletedTasks - r.RatedTasks
	r.EstimationAccuracy = estimationAccuracy(completed, p.Now)
	r.BugRatio = bugRatio(inWindow)

	sessions := completedSessions(completed)
	r.FocusScore = focusScore(sessions)
	r.DeepWorkBonus = deepWorkBonus(sessions)
	r.ContextSwitchPenalty = contextSwitchPenalty(completed)

	for _, t := range inWindow {
		r.TotalPoints += t.Points()
	}
	for _, t := range completed {
		r.CompletedPoints += t.Points()
	}
	if r.TotalPoints > 0 {
		r.WeightedCompletionRate = r.CompletedPoints / r.TotalPoints * 100
	}
	r.Velocity = r.CompletedPoints / daysInWindow(p.Tasks, p.Window, p.Now)

	r.CompletionStreak = completionStreak(p.Tasks, p.Now)
	r.LearningStreak = learningStreak(p.Tasks, p.Now)
	r.ZeroBugStreak = zeroBugStreak(p.Tasks, p.Now)

	r.ConsistencyScore = consistencyScore(completed, p.Window, p.Now)
	r.FirstTimeRate = firstTimeRate(completed)

	target := p.WeeklyTargetHours
	if target <= 0 {
		target = DefaultWeeklyTargetHours
	}
	targetHours := target
	if p.Window == WindowToday {
		targetHours = target / 5 // pro-rated working day
	}
	r.WorkHoursTarget = int(targetHours * 3600)
	if r.WorkHoursTarget > 0 {
		r.WorkHoursProgress = float64(r.WorkTime) / float64(r.WorkHoursTarget) * 100
	}

	r.OrgStats = orgStats(p.Tasks, p.Orgs, p.Now)
	r.ProductivityScore = compositeScore(r)
	return r
}

// compositeScore folds the normalized sub-scores into the single 0-100
// productivity number, then applies bonuses and penalties.
func compositeScore(r Report) int {
	bugScore := math.Max(0, 100-r.BugRatio*2)
	quality := r.AvgQualityScore / 5 * 100

	score := r.WeightedCompletionRate*weightCompletion +
		clamp100(quality)*weightQuality +
		clamp100(r.EstimationAccuracy)*weightEstimation +
		clamp100(bugScore)*weightBugRatio +
		clamp100(r.FocusScore)*weightFocus +
		clamp100(r.MeetingEfficiency)*weightMeetings +
		clamp100(r.ConsistencyScore)*weightConsistent +
		clamp100(r.FirstTimeRate)*weightFirstTime

	score += r.DeepWorkBonus
	score -= r.ContextSwitchPenalty
	score += streakBonus(r.CompletionStreak, 3, 5)
	score += streakBonus(r.LearningStreak, 3, 5)
	score += streakBonus(r.ZeroBugStreak, 3, 7)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// streakBonus awards +3 at the lower threshold, +5 at the higher
func streakBonus(streak, low, high int) float64 {
	switch {
	case streak >= high:
		return 5
	case streak >= low:
		return 3
	default:
		return 0
	}
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// filterWindow keeps tasks whose creation date falls inside the window
func filterWindow(tasks []model.Task, w Window, now time.Time) []model.Task {
	if w == WindowAll {
		return tasks
	}
	start := startOfDay(now)
	if w == WindowWeek {
		start = startOfWeek(now)
	}
	var out []model.Task
	for _, t := range tasks {
		if !t.CreatedAt.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// startOfWeek returns the most recent Sunday midnight
func startOfWeek(now time.Time) time.Time {
	return startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
}

func daysInWindow(tasks []model.Task, w Window, now time.Time) float64 {
	switch w {
	case WindowToday:
		return 1
	case WindowWeek:
		return 7
	}
	// All-time velocity is measured against the span since the first task
	earliest := now
	for _, t := range tasks {
		if t.CreatedAt.Before(earliest) {
			earliest = t.CreatedAt
		}
	}
	days := math.Ceil(now.Sub(earliest).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

func typeBreakdown(tasks []model.Task) map[model.TaskType]int {
	out := map[model.TaskType]int{
		model.TypeFeature: 0, model.TypeBug: 0, model.TypeSupport: 0,
		model.TypeLearning: 0, model.TypeStandup: 0, model.TypeMeeting: 0,
		model.TypeAnalysis: 0, model.TypeDocumentation: 0,
	}
	for _, t := range tasks {
		out[t.Type]++
	}
	return out
}

func timeTotals(tasks []model.Task, orgs []model.Organization, now time.Time) (total, work, learning, meeting int) {
	for _, t := range tasks {
		elapsed := timer.Elapsed(t, now)
		total += elapsed
		if org, ok := model.OrgByID(orgs, t.OrgID); ok && org.Category == model.OrgWork {
			work += elapsed
		}
		switch t.Type {
		case model.TypeLearning:
			learning += elapsed
		case model.TypeStandup, model.TypeMeeting:
			meeting += elapsed
		}
	}
	return
}

// meetingEfficiency is 100 up to a 25% meeting load, then decays 4 points
// per percentage point over
func meetingEfficiency(meetingRatio float64) float64 {
	if meetingRatio <= 25 {
		return 100
	}
	return math.Max(0, 100-(meetingRatio-25)*4)
}

func avgQuality(completed []model.Task) (float64, int) {
	var sum float64
	var rated int
	for _, t := range completed {
		if t.Quality != model.QualityUnrated && t.Quality != "" {
			sum += t.Quality.Score()
			rated++
		}
	}
	if rated == 0 {
		return 0, 0
	}
	return sum / float64(rated), rated
}

// estimationAccuracy rewards actuals close to the size estimate; a miss
// of 100% or more scores zero for that task
func estimationAccuracy(completed []model.Task, now time.Time) float64 {
	var sum float64
	var n int
	for _, t := range completed {
		est := t.EstimatedHours()
		if est <= 0 {
			continue
		}
		actual := float64(timer.Elapsed(t, now)) / 3600
		variance := math.Abs(actual-est) / est
		sum += 1 - math.Min(variance, 1)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) * 100
}

func bugRatio(tasks []model.Task) float64 {
	var bugs, features int
	for _, t := range tasks {
		switch t.Type {
		case model.TypeBug:
			bugs++
		case model.TypeFeature:
			features++
		}
	}
	if bugs+features == 0 {
		return 0
	}
	return float64(bugs) / float64(bugs+features) * 100
}

func completedSessions(completed []model.Task) []model.Session {
	var out []model.Session
	for _, t := range completed {
		out = append(out, t.Sessions...)
	}
	return out
}

// focusScore treats a 30 minute average session as full focus
func focusScore(sessions []model.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var sum int
	for _, s := range sessions {
		sum += s.Duration
	}
	avg := float64(sum) / float64(len(sessions))
	return math.Min(avg/1800*100, 100)
}

// deepWorkBonus awards 10 points per deep-work hour (sessions of 2h or
// longer), capped at 20
func deepWorkBonus(sessions []model.Session) float64 {
	var deep int
	for _, s := range sessions {
		if s.Duration >= 7200 {
			deep += s.Duration
		}
	}
	return math.Min(float64(deep)/3600*10, 20)
}

// contextSwitchPenalty kicks in past 3 sessions per completed task,
// 5 points per extra session, capped at 15
func contextSwitchPenalty(completed []model.Task) float64 {
	if len(completed) == 0 {
		return 0
	}
	var sessions int
	for _, t := range completed {
		sessions += len(t.Sessions)
	}
	avg := float64(sessions) / float64(len(completed))
	if avg <= 3 {
		return 0
	}
	return math.Min((avg-3)*5, 15)
}

// consistencyScore applies to the week window only; other windows score
// a flat 100. Completed points are partitioned across the week's seven
// days by completion date and the relative spread (coefficient of
// variation, as a percentage) is subtracted from 100.
func consistencyScore(completed []model.Task, w Window, now time.Time) float64 {
	if w != WindowWeek {
		return 100
	}
	weekStart := startOfWeek(now)
	var daily [7]float64
	for _, t := range completed {
		if t.CompletedAt == nil {
			continue
		}
		dayIdx := int(t.CompletedAt.Sub(weekStart).Hours() / 24)
		if dayIdx < 0 || dayIdx > 6 {
			continue
		}
		daily[dayIdx] += t.Points()
	}

	var mean float64
	for _, v := range daily {
		mean += v
	}
	mean /= 7
	if mean == 0 {
		return 100
	}
	var variance float64
	for _, v := range daily {
		variance += (v - mean) * (v - mean)
	}
	variance /= 7
	cv := math.Sqrt(variance) / mean * 100
	return math.Max(0, 100-cv)
}

// firstTimeRate is the share of completed tasks never reopened; an empty
// set counts as a perfect 100
func firstTimeRate(completed []model.Task) float64 {
	if len(completed) == 0 {
		return 100
	}
	var firstTime int
	for _, t := range completed {
		if t.ReopenedCount == 0 {
			firstTime++
		}
	}
	return float64(firstTime) / float64(len(completed)) * 100
}

func orgStats(tasks []model.Task, orgs []model.Organization, now time.Time) []OrgStat {
	out := make([]OrgStat, 0, len(orgs))
	for _, org := range orgs {
		stat := OrgStat{Org: org}
		for _, t := range tasks {
			if t.OrgID != org.ID {
				continue
			}
			stat.Total++
			if t.Completed {
				stat.Completed++
			} else {
				stat.Active++
			}
			if t.IsStale(now) {
				stat.Stale++
			}
			stat.TimeSpent += timer.Elapsed(t, now)
		}
		if stat.Total > 0 {
			stat.CompletionRate = float64(stat.Completed) / float64(stat.Total) * 100
		}
		out = append(out, stat)
	}
	return out
}

// TimeComparison is the per-task estimate-vs-actual view shown in lists
type TimeComparison struct {
	ActualHours    float64
	EstimatedHours float64
	Percentage     float64
	OverBudget     bool
}

// CompareEstimate derives the time budget view for a single task
func CompareEstimate(t model.Task, now time.Time) TimeComparison {
	actual := float64(timer.Elapsed(t, now)) / 3600
	est := t.EstimatedHours()
	c := TimeComparison{ActualHours: actual, EstimatedHours: est}
	if est > 0 {
		c.Percentage = actual / est * 100
		c.OverBudget = actual > est
	}
	return c
}
