package sweep

import (
	"testing"
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

func standup(scheduled string, autoComplete bool, durationMin int) model.Task {
	created := time.Date(2026, 8, 3, 7, 0, 0, 0, time.UTC)
	return model.Task{
		ID:              "standup",
		Title:           "daily standup",
		Type:            model.TypeStandup,
		Size:            model.SizeXS,
		Priority:        model.PriorityMedium,
		Quality:         model.QualityUnrated,
		ScheduledTime:   scheduled,
		AutoComplete:    autoComplete,
		DurationMinutes: durationMin,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func eventsOf(events []Event, kind EventKind) []Event {
	var out []Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// A standup scheduled 09:00 with a 30 minute auto-complete: the 09:00
// sweep starts it, the 09:30 sweep completes it with exactly 1800s.
func TestScheduledStandupLifecycle(t *testing.T) {
	tasks := []model.Task{standup("09:00", true, 30)}
	markers := Markers{}

	nineAM := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks, markers, events := Run(tasks, markers, nineAM, Config{})

	if !tasks[0].TimerRunning {
		t.Fatal("09:00 sweep did not start the standup")
	}
	if len(eventsOf(events, EventAutoStarted)) != 1 {
		t.Fatalf("events = %+v, want one auto-start", events)
	}

	// Intermediate sweeps neither restart nor complete early
	tasks, markers, events = Run(tasks, markers, nineAM.Add(15*time.Minute), Config{})
	if len(events) != 0 {
		t.Fatalf("09:15 sweep raised events: %+v", events)
	}

	tasks, markers, events = Run(tasks, markers, nineAM.Add(31*time.Minute), Config{})
	got := tasks[0]
	if !got.Completed || got.TimerRunning {
		t.Fatalf("09:31 sweep did not complete the standup: %+v", got)
	}
	if got.TimeSpent != 1800 {
		t.Fatalf("timeSpent = %d, want exactly 1800", got.TimeSpent)
	}
	if len(eventsOf(events, EventAutoCompleted)) != 1 {
		t.Fatalf("events = %+v, want one auto-complete", events)
	}

	// Markers persist: nothing refires later the same day
	_, _, events = Run(tasks, markers, nineAM.Add(2*time.Hour), Config{})
	if len(events) != 0 {
		t.Fatalf("later sweep raised events: %+v", events)
	}
}

func TestAutoStartFiresOncePerDay(t *testing.T) {
	tasks := []model.Task{standup("09:00", false, 0)}
	markers := Markers{}

	nineAM := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tasks, markers, _ = Run(tasks, markers, nineAM, Config{})
	if !tasks[0].TimerRunning {
		t.Fatal("first 09:00 sweep did not start the timer")
	}

	// Pause manually, then hit 09:00 again within the same minute
	tasks[0].TimerRunning = false
	tasks[0].TimerStartedAt = nil
	tasks, _, events := Run(tasks, markers, nineAM.Add(30*time.Second), Config{})
	if tasks[0].TimerRunning {
		t.Fatal("marker did not suppress the repeat auto-start")
	}
	if len(events) != 0 {
		t.Fatalf("repeat sweep raised events: %+v", events)
	}

	// A new day clears the gate
	nextDay := nineAM.AddDate(0, 0, 1)
	tasks, _, _ = Run(tasks, markers, nextDay, Config{})
	if !tasks[0].TimerRunning {
		t.Fatal("auto-start did not fire on the following day")
	}
}

func TestAutoStartSkipsCompletedAndArchived(t *testing.T) {
	nineAM := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)

	done := standup("09:00", false, 0)
	done.Completed = true
	archived := standup("09:00", false, 0)
	archived.ID = "archived"
	archived.Archived = true

	tasks, _, events := Run([]model.Task{done, archived}, Markers{}, nineAM, Config{})
	for _, tk := range tasks {
		if tk.TimerRunning {
			t.Fatalf("sweep started excluded task %s", tk.ID)
		}
	}
	if len(events) != 0 {
		t.Fatalf("events = %+v, want none", events)
	}
}

func TestAutoCompleteIgnoresManualTimers(t *testing.T) {
	nineAM := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	tk := standup("", false, 0) // no auto-complete
	started := nineAM
	tk.TimerRunning = true
	tk.TimerStartedAt = &started

	tasks, _, events := Run([]model.Task{tk}, Markers{}, nineAM.Add(3*time.Hour), Config{})
	if tasks[0].Completed || !tasks[0].TimerRunning {
		t.Fatalf("sweep touched a manual timer: %+v", tasks[0])
	}
	if len(eventsOf(events, EventAutoCompleted)) != 0 {
		t.Fatal("auto-complete fired without the flag")
	}
}

func TestRecurrenceSpawnRaisesEvent(t *testing.T) {
	created := time.Date(2026, 7, 27, 9, 0, 0, 0, time.UTC)
	tpl := model.Task{
		ID: "tpl", Title: "weekly review", Type: model.TypeAnalysis,
		Size: model.SizeS, Priority: model.PriorityMedium,
		Recurrence: model.RecurWeekly, Quality: model.QualityUnrated,
		CreatedAt: created, UpdatedAt: created,
	}

	now := created.AddDate(0, 0, 8)
	tasks, _, events := Run([]model.Task{tpl}, Markers{}, now, Config{})
	if len(tasks) != 2 {
		t.Fatalf("list has %d tasks after spawn, want 2", len(tasks))
	}
	spawns := eventsOf(events, EventRecurrenceSpawned)
	if len(spawns) != 1 || spawns[0].Task.ID == "tpl" {
		t.Fatalf("spawn events = %+v, want one for the clone", spawns)
	}
}

func TestStaleReminderOncePer24h(t *testing.T) {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	old := model.Task{
		ID: "old", Title: "forgotten", Type: model.TypeFeature,
		Size: model.SizeM, Priority: model.PriorityMedium,
		Quality: model.QualityUnrated, CreatedAt: created, UpdatedAt: created,
	}

	now := created.AddDate(0, 0, 3)
	tasks, markers, events := Run([]model.Task{old}, Markers{}, now, Config{})
	if len(eventsOf(events, EventStaleTask)) != 1 {
		t.Fatalf("events = %+v, want one stale reminder", events)
	}

	_, markers, events = Run(tasks, markers, now.Add(6*time.Hour), Config{})
	if len(eventsOf(events, EventStaleTask)) != 0 {
		t.Fatal("stale reminder refired within 24h")
	}

	_, _, events = Run(tasks, markers, now.Add(25*time.Hour), Config{})
	if len(eventsOf(events, EventStaleTask)) != 1 {
		t.Fatal("stale reminder did not refire after 24h")
	}
}

func TestMorningReminder(t *testing.T) {
	eight := time.Date(2026, 8, 3, 8, 0, 0, 0, time.UTC)
	cfg := Config{MorningReminder: "08:00"}

	_, markers, events := Run(nil, Markers{}, eight, cfg)
	if len(eventsOf(events, EventMorningReminder)) != 1 {
		t.Fatalf("events = %+v, want morning reminder", events)
	}

	_, _, events = Run(nil, markers, eight.Add(20*time.Second), cfg)
	if len(events) != 0 {
		t.Fatal("morning reminder refired the same day")
	}
}

func TestRunLeavesInputsUntouched(t *testing.T) {
	tasks := []model.Task{standup("09:00", false, 0)}
	markers := Markers{"unrelated": "x"}

	nineAM := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	out, outMarkers, _ := Run(tasks, markers, nineAM, Config{})

	if tasks[0].TimerRunning {
		t.Fatal("input task list was mutated")
	}
	if len(markers) != 1 {
		t.Fatal("input markers were mutated")
	}
	if !out[0].TimerRunning || outMarkers["autostart_standup"] == "" {
		t.Fatalf("outputs missing updates: %+v %v", out[0], outMarkers)
	}
}
