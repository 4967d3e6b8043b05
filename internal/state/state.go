// Package state persists session settings (volume, mute, last picker
// directory) in a SQLite database under the XDG data directory.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "waveplay"
	dbFileName   = "waveplay.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	debounce  time.Duration
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Settings
}

// Open opens the database at its default location.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens or creates the database at path.
func OpenPath(path string) (*Manager, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db, debounce: saveDebounce}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	var flushErr error
	if pending != nil {
		flushErr = saveSettings(m.db, *pending)
	}

	if err := m.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// GetSettings returns the saved settings, or nil on first run.
func (m *Manager) GetSettings() (*Settings, error) {
	m.saveMu.Lock()
	if m.pending != nil {
		s := *m.pending
		m.saveMu.Unlock()
		return &s, nil
	}
	m.saveMu.Unlock()

	return getSettings(m.db)
}

// SaveSettings schedules a debounced write. Only the last value saved
// within the debounce window reaches the database.
func (m *Manager) SaveSettings(s Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.debounce, m.flush)
}

func (m *Manager) flush() {
	m.saveMu.Lock()
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		_ = saveSettings(m.db, *pending)
	}
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
