package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
	"github.com/kolisa/Daily-task-manager/internal/sweep"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationSeedsDefaultOrganizations(t *testing.T) {
	db := openTestDB(t)

	orgs, err := db.GetOrganizations()
	if err != nil {
		t.Fatalf("GetOrganizations failed: %v", err)
	}
	if len(orgs) != 5 {
		t.Fatalf("got %d seeded organizations, want 5", len(orgs))
	}

	var work, personal int
	for _, o := range orgs {
		switch o.Category {
		case model.OrgWork:
			work++
		case model.OrgPersonal:
			personal++
		}
	}
	if work != 2 || personal != 3 {
		t.Fatalf("work/personal = %d/%d, want 2/3", work, personal)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	db := openTestDB(t)

	created := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	started := created.Add(time.Hour)
	last := created.Add(24 * time.Hour)

	task := model.Task{
		ID:              "t1",
		Title:           "fix login flow",
		Type:            model.TypeBug,
		Size:            model.SizeL,
		Priority:        model.PriorityHigh,
		OrgID:           "webafrica",
		Notes:           "repro in staging",
		Recurrence:      model.RecurCustom,
		CustomDays:      []time.Weekday{time.Tuesday, time.Thursday},
		ScheduledTime:   "09:00",
		AutoComplete:    true,
		DurationMinutes: 15,
		LastRecurrence:  &last,
		Quality:         model.QualityGood,
		ReopenedCount:   1,
		TimerRunning:    true,
		TimerStartedAt:  &started,
		TimeSpent:       1800,
		Sessions: []model.Session{
			{ID: "s1", TaskID: "t1", Start: created, End: created.Add(30 * time.Minute), Duration: 1800},
		},
		CreatedAt: created,
		UpdatedAt: started,
	}

	if err := db.SaveTask(task); err != nil {
		t.Fatalf("SaveTask failed: %v", err)
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("loaded %d tasks, want 1", len(tasks))
	}

	got := tasks[0]
	if got.Title != task.Title || got.Type != task.Type || got.Size != task.Size ||
		got.Priority != task.Priority || got.OrgID != task.OrgID || got.Notes != task.Notes {
		t.Fatalf("descriptive fields lost: %+v", got)
	}
	if got.Recurrence != model.RecurCustom || len(got.CustomDays) != 2 ||
		got.CustomDays[0] != time.Tuesday || got.CustomDays[1] != time.Thursday {
		t.Fatalf("recurrence fields lost: %+v", got)
	}
	if got.ScheduledTime != "09:00" || !got.AutoComplete || got.DurationMinutes != 15 {
		t.Fatalf("scheduling fields lost: %+v", got)
	}
	if got.LastRecurrence == nil || !got.LastRecurrence.Equal(last) {
		t.Fatalf("lastRecurrence = %v, want %v", got.LastRecurrence, last)
	}
	if !got.TimerRunning || got.TimerStartedAt == nil || !got.TimerStartedAt.Equal(started) {
		t.Fatalf("timer fields lost: %+v", got)
	}
	if got.TimeSpent != 1800 || got.Quality != model.QualityGood || got.ReopenedCount != 1 {
		t.Fatalf("history fields lost: %+v", got)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Duration != 1800 {
		t.Fatalf("sessions lost: %+v", got.Sessions)
	}
}

func TestSaveTasksUpsertsAndKeepsSessions(t *testing.T) {
	db := openTestDB(t)

	created := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	task := model.Task{
		ID: "t1", Title: "draft report", Type: model.TypeDocumentation,
		Size: model.SizeM, Priority: model.PriorityMedium,
		Recurrence: model.RecurNone, Quality: model.QualityUnrated,
		CreatedAt: created, UpdatedAt: created,
	}
	if err := db.SaveTasks([]model.Task{task}); err != nil {
		t.Fatalf("initial save failed: %v", err)
	}

	// Complete it with one session and save again
	done := created.Add(2 * time.Hour)
	task.Completed = true
	task.CompletedAt = &done
	task.TimeSpent = 3600
	task.Sessions = []model.Session{
		{ID: "s1", TaskID: "t1", Start: created, End: created.Add(time.Hour), Duration: 3600},
	}
	task.UpdatedAt = done
	if err := db.SaveTasks([]model.Task{task}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	// A third save must not duplicate the session
	if err := db.SaveTasks([]model.Task{task}); err != nil {
		t.Fatalf("third save failed: %v", err)
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("upsert created %d rows, want 1", len(tasks))
	}
	got := tasks[0]
	if !got.Completed || got.TimeSpent != 3600 {
		t.Fatalf("update lost: %+v", got)
	}
	if len(got.Sessions) != 1 {
		t.Fatalf("%d sessions after repeated saves, want 1", len(got.Sessions))
	}
}

func TestArchiveAndClearCompleted(t *testing.T) {
	db := openTestDB(t)

	created := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	done := created.Add(time.Hour)
	tasks := []model.Task{
		{ID: "open", Title: "open", Type: model.TypeFeature, Size: model.SizeM,
			Priority: model.PriorityMedium, Recurrence: model.RecurNone,
			Quality: model.QualityUnrated, CreatedAt: created, UpdatedAt: created},
		{ID: "done", Title: "done", Type: model.TypeFeature, Size: model.SizeM,
			Priority: model.PriorityMedium, Recurrence: model.RecurNone,
			Quality: model.QualityUnrated, Completed: true, CompletedAt: &done,
			CreatedAt: created, UpdatedAt: done},
	}
	if err := db.SaveTasks(tasks); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := db.ClearCompleted(); err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}

	loaded, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	for _, tk := range loaded {
		switch tk.ID {
		case "open":
			if tk.Archived {
				t.Fatal("ClearCompleted archived an open task")
			}
		case "done":
			if !tk.Archived {
				t.Fatal("ClearCompleted left the completed task active")
			}
		}
	}
}

func TestMarkersRoundTrip(t *testing.T) {
	db := openTestDB(t)

	m := sweep.Markers{
		"autostart_t1": "2026-08-03",
		"morning":      "2026-08-03",
		"stale_t2":     "2026-08-03T09:00:00Z",
	}
	if err := db.SaveMarkers(m); err != nil {
		t.Fatalf("SaveMarkers failed: %v", err)
	}

	got, err := db.LoadMarkers()
	if err != nil {
		t.Fatalf("LoadMarkers failed: %v", err)
	}
	if len(got) != 3 || got["autostart_t1"] != "2026-08-03" || got["stale_t2"] != "2026-08-03T09:00:00Z" {
		t.Fatalf("markers = %v", got)
	}

	// Save replaces: dropping a key removes it from the store
	delete(m, "morning")
	if err := db.SaveMarkers(m); err != nil {
		t.Fatalf("second SaveMarkers failed: %v", err)
	}
	got, err = db.LoadMarkers()
	if err != nil {
		t.Fatalf("second LoadMarkers failed: %v", err)
	}
	if _, ok := got["morning"]; ok {
		t.Fatal("removed marker survived the save")
	}
}

func TestGetOrCreateTagNormalizes(t *testing.T) {
	db := openTestDB(t)

	first, err := db.GetOrCreateTag("#Backend")
	if err != nil {
		t.Fatalf("GetOrCreateTag failed: %v", err)
	}
	if first.Name != "backend" {
		t.Fatalf("tag name = %q, want backend", first.Name)
	}

	second, err := db.GetOrCreateTag("backend")
	if err != nil {
		t.Fatalf("second GetOrCreateTag failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("normalization did not dedupe the tag")
	}
}

// TestLoadTasksNoDeadlock is a regression guard for the SQLite deadlock
// where follow-up queries during rows iteration hang under
// SetMaxOpenConns(1). LoadTasks must collect rows fully before loading
// sessions and tags.
func TestLoadTasksNoDeadlock(t *testing.T) {
	db := openTestDB(t)

	created := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	var tasks []model.Task
	for i := 0; i < 20; i++ {
		id := "task" + string(rune('a'+i))
		tasks = append(tasks, model.Task{
			ID: id, Title: id, Type: model.TypeFeature, Size: model.SizeS,
			Priority: model.PriorityMedium, Recurrence: model.RecurNone,
			Quality: model.QualityUnrated, TimeSpent: 600,
			Sessions: []model.Session{
				{ID: id + "-s", TaskID: id, Start: created, End: created.Add(10 * time.Minute), Duration: 600},
			},
			CreatedAt: created, UpdatedAt: created,
		})
	}
	if err := db.SaveTasks(tasks); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		loaded, err := db.LoadTasks()
		if err == nil && len(loaded) != 20 {
			t.Errorf("loaded %d tasks, want 20", len(loaded))
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("LoadTasks failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("LoadTasks timed out, possible deadlock")
	}
}
