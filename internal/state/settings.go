package state

import (
	"database/sql"
	"errors"
)

// Settings is the session state restored on the next start.
type Settings struct {
	Volume  int // percent, 0-100
	Muted   bool
	LastDir string // last directory opened in the file picker
}

func getSettings(db *sql.DB) (*Settings, error) {
	row := db.QueryRow(`SELECT volume, muted, last_dir FROM settings WHERE id = 1`)

	var s Settings
	var lastDir sql.NullString
	err := row.Scan(&s.Volume, &s.Muted, &lastDir)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	if lastDir.Valid {
		s.LastDir = lastDir.String
	}

	return &s, nil
}

func saveSettings(db *sql.DB, s Settings) error {
	var lastDir sql.NullString
	if s.LastDir != "" {
		lastDir = sql.NullString{String: s.LastDir, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO settings (id, volume, muted, last_dir)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted,
			last_dir = excluded.last_dir
	`, min(max(s.Volume, 0), 100), s.Muted, lastDir)
	return err
}
