package metrics

import (
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/timer"
)

// Streaks scan back up to 30 calendar days from today. Days without a
// qualifying task are skipped rather than breaking the run; the first
// day that actively fails the condition ends the streak.
const streakLookbackDays = 30

// completionStreak counts consecutive days where every task created that
// day ended up completed
func completionStreak(tasks []model.Task, now time.Time) int {
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		dayStart := startOfDay(now).AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		created, completed := 0, 0
		for _, t := range tasks {
			if inRange(t.CreatedAt, dayStart, dayEnd) {
				created++
				if t.Completed {
					completed++
				}
			}
		}
		if created == 0 {
			continue
		}
		if completed < created {
			break
		}
		streak++
	}
	return streak
}

// learningStreak counts consecutive days with at least one learning task
// carrying tracked time
func learningStreak(tasks []model.Task, now time.Time) int {
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		dayStart := startOfDay(now).AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		learning, active := 0, 0
		for _, t := range tasks {
			if t.Type != model.TypeLearning || !inRange(t.CreatedAt, dayStart, dayEnd) {
				continue
			}
			learning++
			if timer.Elapsed(t, now) > 0 {
				active++
			}
		}
		if learning == 0 {
			continue
		}
		if active == 0 {
			break
		}
		streak++
	}
	return streak
}

// zeroBugStreak counts consecutive working days on which no bug task was
// created
func zeroBugStreak(tasks []model.Task, now time.Time) int {
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		dayStart := startOfDay(now).AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		created, bugs := 0, 0
		for _, t := range tasks {
			if inRange(t.CreatedAt, dayStart, dayEnd) {
				created++
				if t.Type == model.TypeBug {
					bugs++
				}
			}
		}
		if created == 0 {
			continue
		}
		if bugs > 0 {
			break
		}
		streak++
	}
	return streak
}

func inRange(ts, start, end time.Time) bool {
	return !ts.Before(start) && ts.Before(end)
}
