package playback

import (
	"time"

	"github.com/llehouerou/waveplay/internal/errmsg"
	"github.com/llehouerou/waveplay/internal/playlist"
)

// Event is a coordinator notification delivered to listeners.
type Event interface {
	playbackEvent()
}

// IndexChange is emitted when the current row changes, including to -1.
type IndexChange struct {
	Previous int
	Index    int
}

// TrackChange is emitted after IndexChange whenever a row is started.
//
// Emitted by:
//   - PlayTrackAt, and everything built on it (Play from no selection,
//     Next/Previous, auto-advance, SetPlaylist, Reload)
//
// NOT emitted by:
//   - Pause/Stop/Toggle: transport changes emit StateChange only
//   - index remapping after a sort: the same track keeps playing
type TrackChange struct {
	Track playlist.Track
	Index int
}

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// PositionChange is emitted when the engine reports a new position.
type PositionChange struct {
	Position time.Duration
}

// DurationChange is emitted when the engine reports the track duration.
type DurationChange struct {
	Duration time.Duration
}

// MuteChange is emitted by ToggleMute.
type MuteChange struct {
	Muted bool
}

// VolumeChange is emitted by SetVolume.
type VolumeChange struct {
	Volume int // percent, 0-100
}

// WrapChange is emitted by SetWrap when the setting changes.
type WrapChange struct {
	Wrap bool
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation errmsg.Op
	Path      string // track path if applicable
	Err       error
}

// Message returns the user-facing text for the error.
func (e ErrorEvent) Message() string {
	return errmsg.Format(e.Operation, e.Err)
}

func (IndexChange) playbackEvent()    {}
func (TrackChange) playbackEvent()    {}
func (StateChange) playbackEvent()    {}
func (PositionChange) playbackEvent() {}
func (DurationChange) playbackEvent() {}
func (MuteChange) playbackEvent()     {}
func (VolumeChange) playbackEvent()   {}
func (WrapChange) playbackEvent()     {}
func (ErrorEvent) playbackEvent()     {}
