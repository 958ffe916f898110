package db

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

const taskColumns = `id, title, type, size, priority, org_id, notes,
	recurrence, custom_days, scheduled_time, auto_complete, duration_minutes,
	last_recurrence, completed, completed_at, quality, reopened_count,
	archived, timer_running, timer_started_at, time_spent,
	created_at, updated_at`

// LoadTasks returns every task, archived included, with sessions and tag
// associations attached. Metrics need the full history, so filtering is
// left to the caller.
func (db *DB) LoadTasks() ([]model.Task, error) {
	rows, err := db.Query(`
		SELECT ` + taskColumns + `
		FROM tasks
		ORDER BY
			completed,
			CASE priority
				WHEN 'high' THEN 0
				WHEN 'medium' THEN 1
				WHEN 'low' THEN 2
			END,
			created_at DESC
	`)
	if err != nil {
		return nil, err
	}

	// Collect tasks fully before the follow-up queries. With
	// SetMaxOpenConns(1), a nested query during rows iteration deadlocks.
	// A row that fails to scan is dropped rather than failing the load;
	// the core must always receive a structurally valid list.
	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	sessions, err := db.loadSessions()
	if err != nil {
		return nil, err
	}
	tags, err := db.loadTaskTags()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Sessions = sessions[tasks[i].ID]
		tasks[i].TagIDs = tags[tasks[i].ID]
	}

	return tasks, nil
}

// GetTask returns a single task by ID, or nil when absent
func (db *DB) GetTask(id string) (*model.Task, error) {
	row := db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	srows, err := db.Query(`
		SELECT id, task_id, started_at, ended_at, duration
		FROM sessions WHERE task_id = ? ORDER BY started_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var s model.Session
		if err := srows.Scan(&s.ID, &s.TaskID, &s.Start, &s.End, &s.Duration); err != nil {
			return nil, err
		}
		t.Sessions = append(t.Sessions, s)
	}

	return &t, nil
}

// SaveTasks upserts a snapshot of tasks in one transaction. Sessions are
// append-only; already-stored ones are left alone.
func (db *DB) SaveTasks(tasks []model.Task) error {
	return db.Transaction(func(tx *sql.Tx) error {
		for _, t := range tasks {
			if err := upsertTask(tx, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveTask upserts a single task with its sessions and tags
func (db *DB) SaveTask(t model.Task) error {
	return db.Transaction(func(tx *sql.Tx) error {
		return upsertTask(tx, t)
	})
}

func upsertTask(tx *sql.Tx, t model.Task) error {
	_, err := tx.Exec(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			size = excluded.size,
			priority = excluded.priority,
			org_id = excluded.org_id,
			notes = excluded.notes,
			recurrence = excluded.recurrence,
			custom_days = excluded.custom_days,
			scheduled_time = excluded.scheduled_time,
			auto_complete = excluded.auto_complete,
			duration_minutes = excluded.duration_minutes,
			last_recurrence = excluded.last_recurrence,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			quality = excluded.quality,
			reopened_count = excluded.reopened_count,
			archived = excluded.archived,
			timer_running = excluded.timer_running,
			timer_started_at = excluded.timer_started_at,
			time_spent = excluded.time_spent,
			updated_at = excluded.updated_at
	`,
		t.ID, t.Title, string(t.Type), string(t.Size), string(t.Priority),
		nullString(t.OrgID), nullString(t.Notes),
		string(t.Recurrence), nullString(encodeWeekdays(t.CustomDays)),
		nullString(t.ScheduledTime), boolInt(t.AutoComplete), t.DurationMinutes,
		t.LastRecurrence, boolInt(t.Completed), t.CompletedAt,
		string(t.Quality), t.ReopenedCount, boolInt(t.Archived),
		boolInt(t.TimerRunning), t.TimerStartedAt, t.TimeSpent,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, s := range t.Sessions {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO sessions (id, task_id, started_at, ended_at, duration)
			VALUES (?, ?, ?, ?, ?)
		`, s.ID, s.TaskID, s.Start, s.End, s.Duration)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`DELETE FROM task_tags WHERE task_id = ?`, t.ID); err != nil {
		return err
	}
	for _, tagID := range t.TagIDs {
		_, err := tx.Exec(`INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)`, t.ID, tagID)
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteTask removes a task and, via cascade, its sessions and tag links
func (db *DB) DeleteTask(id string) error {
	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// ArchiveTask hides a task from active views while keeping its history
func (db *DB) ArchiveTask(id string) error {
	_, err := db.Exec(`UPDATE tasks SET archived = 1, updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

// ClearCompleted archives every completed task in one pass
func (db *DB) ClearCompleted() error {
	_, err := db.Exec(`UPDATE tasks SET archived = 1, updated_at = ? WHERE completed = 1 AND archived = 0`, time.Now())
	return err
}

func (db *DB) loadSessions() (map[string][]model.Session, error) {
	rows, err := db.Query(`
		SELECT id, task_id, started_at, ended_at, duration
		FROM sessions ORDER BY started_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.Session)
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.TaskID, &s.Start, &s.End, &s.Duration); err != nil {
			return nil, err
		}
		out[s.TaskID] = append(out[s.TaskID], s)
	}
	return out, rows.Err()
}

func (db *DB) loadTaskTags() (map[string][]string, error) {
	rows, err := db.Query(`SELECT task_id, tag_id FROM task_tags`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var taskID, tagID string
		if err := rows.Scan(&taskID, &tagID); err != nil {
			return nil, err
		}
		out[taskID] = append(out[taskID], tagID)
	}
	return out, rows.Err()
}

// scanner abstracts over *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var typ, size, priority, recurrence, quality string
	var orgID, notes, customDays, scheduledTime sql.NullString
	var autoComplete, completed, archived, timerRunning int
	var lastRecurrence, completedAt, timerStartedAt sql.NullTime

	err := s.Scan(
		&t.ID, &t.Title, &typ, &size, &priority, &orgID, &notes,
		&recurrence, &customDays, &scheduledTime, &autoComplete, &t.DurationMinutes,
		&lastRecurrence, &completed, &completedAt, &quality, &t.ReopenedCount,
		&archived, &timerRunning, &timerStartedAt, &t.TimeSpent,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}

	t.Type = model.TaskType(typ)
	t.Size = model.Size(size)
	t.Priority = model.Priority(priority)
	t.Recurrence = model.Recurrence(recurrence)
	t.Quality = model.Quality(quality)
	t.OrgID = orgID.String
	t.Notes = notes.String
	t.CustomDays = decodeWeekdays(customDays.String)
	t.ScheduledTime = scheduledTime.String
	t.AutoComplete = autoComplete == 1
	t.Completed = completed == 1
	t.Archived = archived == 1
	t.TimerRunning = timerRunning == 1
	if lastRecurrence.Valid {
		v := lastRecurrence.Time
		t.LastRecurrence = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		t.CompletedAt = &v
	}
	if timerStartedAt.Valid {
		v := timerStartedAt.Time
		t.TimerStartedAt = &v
	}

	return t, nil
}

func encodeWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		out = append(out, time.Weekday(n))
	}
	return out
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
