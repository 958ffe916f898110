package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/kolisa/Daily-task-manager/internal/model"
)

// GetOrganizations returns all organizations, work before personal
func (db *DB) GetOrganizations() ([]model.Organization, error) {
	rows, err := db.Query(`
		SELECT id, label, category, created_at
		FROM organizations
		ORDER BY category = 'personal', label
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []model.Organization
	for rows.Next() {
		var o model.Organization
		var category string
		if err := rows.Scan(&o.ID, &o.Label, &category, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Category = model.OrgCategory(category)
		orgs = append(orgs, o)
	}

	return orgs, rows.Err()
}

// GetOrganization returns a single organization by ID
func (db *DB) GetOrganization(id string) (*model.Organization, error) {
	var o model.Organization
	var category string

	err := db.QueryRow(`
		SELECT id, label, category, created_at
		FROM organizations WHERE id = ?
	`, id).Scan(&o.ID, &o.Label, &category, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	o.Category = model.OrgCategory(category)
	return &o, nil
}

// CreateOrganization creates a new organization
func (db *DB) CreateOrganization(label string, category model.OrgCategory) (*model.Organization, error) {
	id := uuid.New().String()
	now := time.Now()

	_, err := db.Exec(`
		INSERT INTO organizations (id, label, category, created_at)
		VALUES (?, ?, ?, ?)
	`, id, label, string(category), now)

	if err != nil {
		return nil, err
	}

	return &model.Organization{
		ID:        id,
		Label:     label,
		Category:  category,
		CreatedAt: now,
	}, nil
}

// DeleteOrganization removes an organization. Tasks keep their org id and
// render as unassigned.
func (db *DB) DeleteOrganization(id string) error {
	_, err := db.Exec(`DELETE FROM organizations WHERE id = ?`, id)
	return err
}
