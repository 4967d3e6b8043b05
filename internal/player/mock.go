package player

import (
	"sync"
	"time"
)

// mockBuffer is the capacity of the Mock event channel.
const mockBuffer = 1024

// Mock is a test double for Engine. It records commands, tracks a
// simplified transport state and emits the state and status events a real
// engine would. Tests read them back with Drain or inject more with Emit.
// Events that do not fit in the buffer are counted by Dropped.
type Mock struct {
	mu       sync.Mutex
	state    State
	source   string
	load     LoadID
	dropped  int
	loadErrs map[string]error
	loads    []string
	calls    []string
	seeks    []time.Duration
	volume   float64
	muted    bool
	events   chan Event
	closed   bool
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		state:    Stopped,
		volume:   1,
		loadErrs: make(map[string]error),
		events:   make(chan Event, mockBuffer),
	}
}

func (m *Mock) Load(path string) (LoadID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, path)
	m.calls = append(m.calls, "load")
	m.load++
	m.source = path
	m.setState(Stopped)
	if err := m.loadErrs[path]; err != nil {
		m.send(StatusChanged{Source: path, Status: InvalidMedia, Err: err})
		return m.load, err
	}
	m.send(StatusChanged{Source: path, Status: Loaded})
	return m.load, nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "play")
	if m.source != "" && m.loadErrs[m.source] == nil {
		m.setState(Playing)
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "pause")
	if m.state == Playing {
		m.setState(Paused)
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "stop")
	m.setState(Stopped)
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "seek")
	m.seeks = append(m.seeks, pos)
	m.send(PositionChanged{Source: m.source, Position: pos})
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = level
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

func (m *Mock) setState(s State) {
	if m.state == s {
		return
	}
	m.state = s
	m.send(StateChanged{Source: m.source, State: s})
}

// send tags e with the current load and queues it without blocking.
// Events with a load id already set keep it.
func (m *Mock) send(e Event) {
	if m.closed {
		return
	}
	if e.EventLoad() == 0 {
		e = withLoad(e, m.load)
	}
	select {
	case m.events <- e:
	default:
		m.dropped++
	}
}

// Test helpers

// SetLoadError makes Load fail for path.
func (m *Mock) SetLoadError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErrs[path] = err
}

// Emit queues an event on the Events channel. An event without a load id
// is tagged with the current load.
func (m *Mock) Emit(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.send(e)
}

// Drain returns the queued events without blocking.
func (m *Mock) Drain() []Event {
	var out []Event
	for {
		select {
		case e, ok := <-m.events:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

// LastLoad returns the id of the most recent Load, 0 before the first.
func (m *Mock) LastLoad() LoadID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load
}

// Dropped returns how many events did not fit in the buffer.
func (m *Mock) Dropped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loads...)
}

// Calls returns the command names in call order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *Mock) Seeks() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seeks...)
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// ResetCalls clears the recorded command history.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.loads = nil
	m.seeks = nil
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
