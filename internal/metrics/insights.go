package metrics

import (
	"fmt"
)

// Insight is a human-readable recommendation derived from a report
type Insight struct {
	Title string
	Body  string
	Good  bool
}

// Insights derives the recommendation lines shown on the dashboard.
func Insights(r Report) []Insight {
	var out []Insight

	if r.WorkHoursProgress < 80 {
		out = append(out, Insight{
			Title: "Behind on work hours",
			Body: fmt.Sprintf("At %.0f%% of the %s work-hour target. Consider shifting more time to work tasks.",
				r.WorkHoursProgress, r.Window),
		})
	}
	if r.LearningTime < 3600 {
		out = append(out, Insight{
			Title: "Low learning time",
			Body:  "Less than an hour spent on upskilling. Aim for 2-4 hours a week.",
		})
	}
	if r.BugRatio > 30 {
		out = append(out, Insight{
			Title: "High bug ratio",
			Body: fmt.Sprintf("%.0f%% of feature/bug work is bug fixing. Reviews, tests or refactoring may help.",
				r.BugRatio),
		})
	}
	if r.EstimationAccuracy > 0 && r.EstimationAccuracy < 60 {
		out = append(out, Insight{
			Title: "Estimation needs work",
			Body: fmt.Sprintf("Estimation accuracy is %.0f%%. Review completed tasks for estimation patterns.",
				r.EstimationAccuracy),
		})
	}
	if r.FocusScore > 0 && r.FocusScore < 50 {
		out = append(out, Insight{
			Title: "Fragmented sessions",
			Body:  "Work sessions are short. Try blocking out 90+ minute stretches.",
		})
	}
	if r.ProductivityScore >= 80 && r.WorkHoursProgress >= 80 && r.LearningTime >= 3600 {
		out = append(out, Insight{
			Title: "On track",
			Body:  "High score, work hours on target and learning time invested. Keep it up.",
			Good:  true,
		})
	}
	return out
}
