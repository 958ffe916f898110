package db

import (
	"database/sql"

	"github.com/kolisa/Daily-task-manager/internal/sweep"
)

// LoadMarkers reads the full sweep marker set
func (db *DB) LoadMarkers() (sweep.Markers, error) {
	rows, err := db.Query(`SELECT key, value FROM markers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := sweep.Markers{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		m[k] = v
	}

	return m, rows.Err()
}

// SaveMarkers replaces the stored marker set with the given one
func (db *DB) SaveMarkers(m sweep.Markers) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM markers`); err != nil {
			return err
		}
		for k, v := range m {
			if _, err := tx.Exec(`INSERT INTO markers (key, value) VALUES (?, ?)`, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
