// Package player decodes local audio files and plays them through the
// system audio output. Engine is the contract the playback coordinator
// drives; Player implements it on top of gopxl/beep.
package player

import (
	"errors"
	"time"
)

// ErrUnsupportedFormat is returned by Load for file types no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// LoadID numbers the calls to Engine.Load, failed ones included. The
// first load is 1.
type LoadID uint64

// Engine loads and plays one media source at a time. Commands return
// immediately; progress is reported asynchronously on Events in the order
// it happened. Load returns the id its events, and those of every later
// command until the next Load, are tagged with.
type Engine interface {
	Load(path string) (LoadID, error)
	Play()
	Pause()
	Stop()
	Seek(pos time.Duration)
	SetVolume(level float64) // 0.0 to 1.0
	SetMuted(muted bool)
	Events() <-chan Event
	Close() error
}

// State is the transport state reported by the engine.
//
// Valid transitions:
//   - Stopped -> Playing (Play)
//   - Playing -> Paused  (Pause)
//   - Paused  -> Playing (Play)
//   - Playing/Paused -> Stopped (Stop, end of media, Load)
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// MediaStatus describes the loaded media.
type MediaStatus int

const (
	NoMedia MediaStatus = iota
	Loaded
	EndOfMedia
	InvalidMedia
)

// String returns the status name.
func (m MediaStatus) String() string {
	switch m {
	case NoMedia:
		return "NoMedia"
	case Loaded:
		return "Loaded"
	case EndOfMedia:
		return "EndOfMedia"
	case InvalidMedia:
		return "InvalidMedia"
	default:
		return "Unknown"
	}
}

// Event is a notification emitted by an Engine. Load identifies the Load
// call in effect when the event happened, so receivers can drop events
// that belong to an earlier load, even of the same path.
type Event interface {
	EventSource() string
	EventLoad() LoadID
}

// PositionChanged reports the playback position.
type PositionChanged struct {
	Source   string
	Load     LoadID
	Position time.Duration
}

// DurationChanged reports the authoritative duration of the loaded media.
type DurationChanged struct {
	Source   string
	Load     LoadID
	Duration time.Duration
}

// StateChanged reports a transport state transition.
type StateChanged struct {
	Source string
	Load   LoadID
	State  State
}

// StatusChanged reports a media status transition. Err is set for InvalidMedia.
type StatusChanged struct {
	Source string
	Load   LoadID
	Status MediaStatus
	Err    error
}

func (e PositionChanged) EventSource() string { return e.Source }
func (e DurationChanged) EventSource() string { return e.Source }
func (e StateChanged) EventSource() string    { return e.Source }
func (e StatusChanged) EventSource() string   { return e.Source }

func (e PositionChanged) EventLoad() LoadID { return e.Load }
func (e DurationChanged) EventLoad() LoadID { return e.Load }
func (e StateChanged) EventLoad() LoadID    { return e.Load }
func (e StatusChanged) EventLoad() LoadID   { return e.Load }

// withLoad returns e tagged with id.
func withLoad(e Event, id LoadID) Event {
	switch ev := e.(type) {
	case PositionChanged:
		ev.Load = id
		return ev
	case DurationChanged:
		ev.Load = id
		return ev
	case StateChanged:
		ev.Load = id
		return ev
	case StatusChanged:
		ev.Load = id
		return ev
	}
	return e
}
