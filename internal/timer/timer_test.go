package timer

import (
	"testing"
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

func newTask(id string) model.Task {
	now := time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC)
	return model.Task{
		ID:        id,
		Title:     "task " + id,
		Type:      model.TypeFeature,
		Size:      model.SizeM,
		Priority:  model.PriorityMedium,
		Quality:   model.QualityUnrated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func mustFind(t *testing.T, tasks []model.Task, id string) model.Task {
	t.Helper()
	for _, task := range tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not found", id)
	return model.Task{}
}

// Start at t0, pause at t0+10m, resume at t0+15m, stop at t0+25m.
// Expect two sessions of 600s each and timeSpent 1200.
func TestStartPauseResumeStop(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = Start(tasks, "a", t0, Options{})
	a := mustFind(t, tasks, "a")
	if a.State() != model.StateRunning {
		t.Fatalf("after start: state = %v, want running", a.State())
	}
	if a.TimerStartedAt == nil || !a.TimerStartedAt.Equal(t0) {
		t.Fatalf("after start: timerStartedAt = %v, want %v", a.TimerStartedAt, t0)
	}

	tasks = Pause(tasks, "a", t0.Add(10*time.Minute))
	a = mustFind(t, tasks, "a")
	if a.State() != model.StatePaused {
		t.Fatalf("after pause: state = %v, want paused", a.State())
	}
	if a.TimeSpent != 600 {
		t.Fatalf("after pause: timeSpent = %d, want 600", a.TimeSpent)
	}
	if len(a.Sessions) != 1 || a.Sessions[0].Duration != 600 {
		t.Fatalf("after pause: sessions = %+v, want one 600s session", a.Sessions)
	}

	tasks = Start(tasks, "a", t0.Add(15*time.Minute), Options{})
	tasks = Stop(tasks, "a", t0.Add(25*time.Minute))
	a = mustFind(t, tasks, "a")
	if a.State() != model.StateCompleted {
		t.Fatalf("after stop: state = %v, want completed", a.State())
	}
	if a.TimeSpent != 1200 {
		t.Fatalf("after stop: timeSpent = %d, want 1200", a.TimeSpent)
	}
	if len(a.Sessions) != 2 {
		t.Fatalf("after stop: %d sessions, want 2", len(a.Sessions))
	}
	for i, s := range a.Sessions {
		if s.Duration != 600 {
			t.Errorf("session %d duration = %d, want 600", i, s.Duration)
		}
		if s.TaskID != "a" {
			t.Errorf("session %d taskID = %q, want a", i, s.TaskID)
		}
	}
	if a.CompletedAt == nil || !a.CompletedAt.Equal(t0.Add(25*time.Minute)) {
		t.Fatalf("completedAt = %v, want %v", a.CompletedAt, t0.Add(25*time.Minute))
	}
}

func TestStartIsNoOpWhenRunningOrCompleted(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = Start(tasks, "a", t0, Options{})
	tasks = Start(tasks, "a", t0.Add(5*time.Minute), Options{})
	a := mustFind(t, tasks, "a")
	if !a.TimerStartedAt.Equal(t0) {
		t.Fatalf("second start moved timerStartedAt to %v", a.TimerStartedAt)
	}

	tasks = Stop(tasks, "a", t0.Add(10*time.Minute))
	tasks = Start(tasks, "a", t0.Add(20*time.Minute), Options{})
	a = mustFind(t, tasks, "a")
	if a.TimerRunning {
		t.Fatal("start on a completed task restarted the timer")
	}
}

func TestPauseWithoutRunningTimerIsNoOp(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = Pause(tasks, "a", t0)
	a := mustFind(t, tasks, "a")
	if a.TimeSpent != 0 || len(a.Sessions) != 0 {
		t.Fatalf("pause on idle task recorded time: %+v", a)
	}
}

func TestStopIsIdempotentTerminal(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = Start(tasks, "a", t0, Options{})
	tasks = Stop(tasks, "a", t0.Add(time.Hour))
	first := mustFind(t, tasks, "a")

	tasks = Stop(tasks, "a", t0.Add(2*time.Hour))
	second := mustFind(t, tasks, "a")

	if second.TimeSpent != first.TimeSpent {
		t.Fatalf("second stop changed timeSpent: %d -> %d", first.TimeSpent, second.TimeSpent)
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Fatalf("second stop moved completedAt: %v -> %v", first.CompletedAt, second.CompletedAt)
	}
	if len(second.Sessions) != len(first.Sessions) {
		t.Fatalf("second stop added a session")
	}
}

func TestToggleCompleteLeavesTimerAccruing(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = Start(tasks, "a", t0, Options{})
	tasks = ToggleComplete(tasks, "a", t0.Add(10*time.Minute))
	a := mustFind(t, tasks, "a")
	if !a.Completed {
		t.Fatal("toggle did not complete the task")
	}
	if !a.TimerRunning {
		t.Fatal("toggle stopped the running timer")
	}
	if got := Elapsed(a, t0.Add(20*time.Minute)); got != 1200 {
		t.Fatalf("elapsed after toggle = %d, want 1200", got)
	}

	tasks = ToggleComplete(tasks, "a", t0.Add(30*time.Minute))
	a = mustFind(t, tasks, "a")
	if a.Completed || a.CompletedAt != nil {
		t.Fatalf("toggle back left completion fields: %+v", a)
	}
}

func TestElapsedIncludesOpenSession(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = Start(tasks, "a", t0, Options{})
	tasks = Pause(tasks, "a", t0.Add(10*time.Minute))
	tasks = Start(tasks, "a", t0.Add(20*time.Minute), Options{})
	a := mustFind(t, tasks, "a")

	if got := Elapsed(a, t0.Add(25*time.Minute)); got != 900 {
		t.Fatalf("elapsed = %d, want 900 (600 closed + 300 open)", got)
	}
	// Elapsed must not mutate
	if a.TimeSpent != 600 {
		t.Fatalf("elapsed mutated timeSpent to %d", a.TimeSpent)
	}
}

func TestClockSkewClampsToZero(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = Start(tasks, "a", t0, Options{})
	tasks = Pause(tasks, "a", t0.Add(-time.Hour))
	a := mustFind(t, tasks, "a")
	if a.TimeSpent != 0 {
		t.Fatalf("backwards clock produced timeSpent %d, want 0", a.TimeSpent)
	}
	if len(a.Sessions) != 1 || a.Sessions[0].Duration != 0 {
		t.Fatalf("backwards clock session = %+v, want one 0s session", a.Sessions)
	}
}

func TestExclusiveStartPausesOthers(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a"), newTask("b")}

	tasks = Start(tasks, "a", t0, Options{Exclusive: true})
	tasks = Start(tasks, "b", t0.Add(10*time.Minute), Options{Exclusive: true})

	a := mustFind(t, tasks, "a")
	b := mustFind(t, tasks, "b")
	if a.TimerRunning {
		t.Fatal("exclusive start left task a running")
	}
	if a.TimeSpent != 600 {
		t.Fatalf("task a timeSpent = %d, want 600", a.TimeSpent)
	}
	if !b.TimerRunning {
		t.Fatal("task b should be running")
	}
}

func TestConcurrentTimersWithoutExclusive(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a"), newTask("b")}

	tasks = Start(tasks, "a", t0, Options{})
	tasks = Start(tasks, "b", t0, Options{})

	if !mustFind(t, tasks, "a").TimerRunning || !mustFind(t, tasks, "b").TimerRunning {
		t.Fatal("both timers should run concurrently by default")
	}
}

func TestRateQuality(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	tasks = RateQuality(tasks, "a", model.QualityGood, t0)
	if got := mustFind(t, tasks, "a").Quality; got != model.QualityGood {
		t.Fatalf("quality = %q, want good", got)
	}

	tasks = RateQuality(tasks, "a", model.Quality("stellar"), t0)
	if got := mustFind(t, tasks, "a").Quality; got != model.QualityGood {
		t.Fatalf("invalid rating overwrote quality: %q", got)
	}
}

func TestOperationsOnUnknownIDLeaveListUnchanged(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{newTask("a")}

	for name, got := range map[string][]model.Task{
		"start": Start(tasks, "nope", t0, Options{}),
		"pause": Pause(tasks, "nope", t0),
		"stop":  Stop(tasks, "nope", t0),
	} {
		a := mustFind(t, got, "a")
		if a.TimerRunning || a.Completed || a.TimeSpent != 0 {
			t.Errorf("%s on unknown id changed task a: %+v", name, a)
		}
	}
}

func TestCloseFixedSessionCreditsExactDuration(t *testing.T) {
	t0 := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	task := newTask("a")
	started := t0
	task.TimerRunning = true
	task.TimerStartedAt = &started

	// Sweep ran late; the credit must still be exactly 1800s
	got := CloseFixedSession(task, t0.Add(47*time.Minute), 1800)
	if got.TimeSpent != 1800 {
		t.Fatalf("timeSpent = %d, want 1800", got.TimeSpent)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Duration != 1800 {
		t.Fatalf("sessions = %+v, want one 1800s session", got.Sessions)
	}
	if got.TimerRunning {
		t.Fatal("timer still running after fixed close")
	}
}
