package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

// normalizeTagName lowercases and strips the leading # used in quick-add
func normalizeTagName(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
}

// GetTags returns all tags
func (db *DB) GetTags() ([]model.Tag, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at
		FROM tags
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

// GetTagByName returns a tag by its normalized name
func (db *DB) GetTagByName(name string) (*model.Tag, error) {
	var t model.Tag

	err := db.QueryRow(`
		SELECT id, name, created_at
		FROM tags WHERE name = ?
	`, normalizeTagName(name)).Scan(&t.ID, &t.Name, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag creates a new tag
func (db *DB) CreateTag(name string) (*model.Tag, error) {
	id := uuid.New().String()
	now := time.Now()
	name = normalizeTagName(name)

	_, err := db.Exec(`
		INSERT INTO tags (id, name, created_at)
		VALUES (?, ?, ?)
	`, id, name, now)

	if err != nil {
		return nil, err
	}

	return &model.Tag{ID: id, Name: name, CreatedAt: now}, nil
}

// GetOrCreateTag gets a tag by name or creates it if it doesn't exist
func (db *DB) GetOrCreateTag(name string) (*model.Tag, error) {
	tag, err := db.GetTagByName(name)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		return tag, nil
	}
	return db.CreateTag(name)
}

// DeleteTag deletes a tag and its task associations
func (db *DB) DeleteTag(id string) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM task_tags WHERE tag_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM tags WHERE id = ?`, id)
		return err
	})
}
