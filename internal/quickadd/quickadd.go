// Package quickadd parses the one-line task entry syntax used by both
// the TUI add prompt and the command line:
//
//	fix login flow @webafrica !high #bug ~l +09:00 every:weekdays
//
// Tokens may appear in any order; everything unrecognized joins the
// title. Unknown values fall back to defaults rather than erroring, so
// a mistyped token just becomes part of the title.
package quickadd

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

// Parsed is the outcome of parsing one input line
type Parsed struct {
	Task model.Task

	// TagNames are raw tag tokens; the caller resolves them to ids
	TagNames []string
}

// Parse builds a task from a quick-add line. Org tokens are matched
// against the registry by id or label, case-insensitively.
func Parse(input string, orgs []model.Organization, now time.Time) Parsed {
	p := Parsed{
		Task: model.Task{
			ID:         uuid.New().String(),
			Type:       model.TypeFeature,
			Size:       model.SizeM,
			Priority:   model.PriorityMedium,
			Recurrence: model.RecurNone,
			Quality:    model.QualityUnrated,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	var title []string
	for _, tok := range strings.Fields(input) {
		switch {
		case strings.HasPrefix(tok, "@") && len(tok) > 1:
			if org, ok := matchOrg(orgs, tok[1:]); ok {
				p.Task.OrgID = org.ID
				continue
			}
			title = append(title, tok)

		case strings.HasPrefix(tok, "!") && len(tok) > 1:
			switch model.Priority(strings.ToLower(tok[1:])) {
			case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
				p.Task.Priority = model.Priority(strings.ToLower(tok[1:]))
				continue
			}
			title = append(title, tok)

		case strings.HasPrefix(tok, "#") && len(tok) > 1:
			if t := model.TaskType(strings.ToLower(tok[1:])); model.ValidTaskType(t) {
				p.Task.Type = t
				continue
			}
			p.TagNames = append(p.TagNames, tok[1:])

		case strings.HasPrefix(tok, "~") && len(tok) > 1:
			if s := model.Size(strings.ToLower(tok[1:])); model.ValidSize(s) {
				p.Task.Size = s
				continue
			}
			title = append(title, tok)

		case strings.HasPrefix(tok, "+") && len(tok) > 1:
			if _, err := time.Parse("15:04", tok[1:]); err == nil {
				p.Task.ScheduledTime = tok[1:]
				continue
			}
			title = append(title, tok)

		case strings.HasPrefix(tok, "every:"):
			if rec, days, ok := parseRecurrence(tok[len("every:"):]); ok {
				p.Task.Recurrence = rec
				p.Task.CustomDays = days
				continue
			}
			title = append(title, tok)

		case strings.HasPrefix(tok, "for:"):
			if min, ok := parseMinutes(tok[len("for:"):]); ok {
				p.Task.DurationMinutes = min
				p.Task.AutoComplete = true
				continue
			}
			title = append(title, tok)

		default:
			title = append(title, tok)
		}
	}

	p.Task.Title = strings.Join(title, " ")
	return p
}

func matchOrg(orgs []model.Organization, name string) (model.Organization, bool) {
	for _, o := range orgs {
		if strings.EqualFold(o.ID, name) || strings.EqualFold(o.Label, name) {
			return o, true
		}
	}
	return model.Organization{}, false
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// parseRecurrence handles the fixed patterns plus custom day lists like
// "mon,wed,fri"
func parseRecurrence(v string) (model.Recurrence, []time.Weekday, bool) {
	switch model.Recurrence(strings.ToLower(v)) {
	case model.RecurDaily, model.RecurWeekdays, model.RecurWeekly,
		model.RecurBiweekly, model.RecurMonthly:
		return model.Recurrence(strings.ToLower(v)), nil, true
	}

	var days []time.Weekday
	for _, part := range strings.Split(strings.ToLower(v), ",") {
		d, ok := weekdayNames[part]
		if !ok {
			return "", nil, false
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return "", nil, false
	}
	return model.RecurCustom, days, true
}

// parseMinutes accepts "30m", "1h", "1h30m" or a bare minute count
func parseMinutes(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return int(d.Minutes()), true
	}
	var n int
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}
