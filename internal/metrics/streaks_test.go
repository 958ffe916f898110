package metrics

import (
	"testing"
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

func dayTask(id string, typ model.TaskType, created time.Time, completed bool, spent int) model.Task {
	tk := model.Task{
		ID: id, Title: id, Type: typ, Size: model.SizeS,
		Priority: model.PriorityMedium, Quality: model.QualityUnrated,
		TimeSpent: spent, CreatedAt: created, UpdatedAt: created,
	}
	if completed {
		done := created.Add(time.Hour)
		tk.Completed = true
		tk.CompletedAt = &done
	}
	return tk
}

func TestCompletionStreakSkipsEmptyDays(t *testing.T) {
	now := time.Date(2026, 8, 7, 17, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, -offset).Add(-8 * time.Hour) }

	// Today and two days ago all-complete, yesterday empty: streak of 2
	tasks := []model.Task{
		dayTask("t1", model.TypeFeature, day(0), true, 600),
		dayTask("t2", model.TypeFeature, day(2), true, 600),
		dayTask("t3", model.TypeFeature, day(2), true, 600),
	}
	if got := completionStreak(tasks, now); got != 2 {
		t.Fatalf("streak = %d, want 2 (empty day skipped)", got)
	}

	// An incomplete task three days back ends the run
	tasks = append(tasks, dayTask("t4", model.TypeFeature, day(3), false, 0))
	if got := completionStreak(tasks, now); got != 2 {
		t.Fatalf("streak = %d, want 2 (broken on day 3)", got)
	}

	// Incomplete today means no streak at all
	tasks = append(tasks, dayTask("t5", model.TypeFeature, day(0), false, 0))
	if got := completionStreak(tasks, now); got != 0 {
		t.Fatalf("streak = %d, want 0", got)
	}
}

func TestLearningStreak(t *testing.T) {
	now := time.Date(2026, 8, 7, 17, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, -offset).Add(-8 * time.Hour) }

	tasks := []model.Task{
		dayTask("l1", model.TypeLearning, day(0), false, 1800),
		dayTask("l2", model.TypeLearning, day(1), true, 3600),
		// non-learning tasks never factor in
		dayTask("f1", model.TypeFeature, day(2), true, 600),
	}
	if got := learningStreak(tasks, now); got != 2 {
		t.Fatalf("learning streak = %d, want 2", got)
	}

	// A learning task with zero tracked time breaks the run
	tasks = append(tasks, dayTask("l3", model.TypeLearning, day(2), false, 0))
	if got := learningStreak(tasks, now); got != 2 {
		t.Fatalf("learning streak = %d, want 2 (untouched learning day breaks)", got)
	}
}

func TestZeroBugStreak(t *testing.T) {
	now := time.Date(2026, 8, 7, 17, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, -offset).Add(-8 * time.Hour) }

	tasks := []model.Task{
		dayTask("f1", model.TypeFeature, day(0), true, 600),
		dayTask("f2", model.TypeFeature, day(1), true, 600),
		dayTask("b1", model.TypeBug, day(2), true, 600),
	}
	if got := zeroBugStreak(tasks, now); got != 2 {
		t.Fatalf("zero-bug streak = %d, want 2", got)
	}
	if got := zeroBugStreak(nil, now); got != 0 {
		t.Fatalf("zero-bug streak with no tasks = %d, want 0", got)
	}
}
