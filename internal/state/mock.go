package state

import "sync"

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	settings *Settings
	saves    int
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetSettings() (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, nil //nolint:nilnil // mirrors Manager on first run
	}
	s := *m.settings
	return &s, nil
}

func (m *Mock) SaveSettings(s Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &s
	m.saves++
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSettings(s *Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
}

func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
