// Package playback coordinates the playlist store with the audio engine.
//
// The Coordinator owns the current-row index and the mute and volume
// settings. It reads track locators from the store on demand, drives the
// engine, turns engine events into its own notifications and keeps the
// index valid when the store is reset or reordered.
//
// A Coordinator is not safe for concurrent use: commands, HandleEngineEvent
// and store mutations must all happen on one goroutine.
package playback

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/waveplay/internal/errmsg"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/playlist"
)

// NoIndex is the current index when no row is selected.
const NoIndex = -1

// Coordinator drives an Engine through a playlist Store.
type Coordinator struct {
	store  *playlist.Store
	engine player.Engine

	index      int
	loaded     string        // path given to the engine, "" when nothing is loaded
	load       player.LoadID // id of the engine load of loaded
	loadFailed bool   // Load of loaded returned an error that was already reported
	state      State
	status     player.MediaStatus
	position   time.Duration
	duration   time.Duration

	volume         int
	muted          bool
	wrap           bool
	skipUnplayable bool
	failures       int // consecutive unplayable tracks skipped automatically

	listeners     listeners
	cancelObserve func()
}

// New creates a coordinator over store and engine and pushes the initial
// volume and mute settings to the engine.
func New(store *playlist.Store, engine player.Engine, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		engine: engine,
		index:  NoIndex,
		state:  StateStopped,
		status: player.NoMedia,
		volume: DefaultVolume,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.engine.SetVolume(float64(c.volume) / 100.0)
	c.engine.SetMuted(c.muted)
	c.cancelObserve = store.Observe(c.onStoreChange)
	return c
}

// Close detaches the coordinator from the store and drops all listeners.
// The engine is owned by the caller.
func (c *Coordinator) Close() {
	if c.cancelObserve != nil {
		c.cancelObserve()
		c.cancelObserve = nil
	}
	c.listeners.clear()
}

// Subscribe registers fn for coordinator events and returns a function
// that removes it.
func (c *Coordinator) Subscribe(fn Listener) (unsubscribe func()) {
	return c.listeners.add(fn)
}

// SetPlaylist replaces the store contents with tracks and starts the first
// row when the list is non-empty.
func (c *Coordinator) SetPlaylist(tracks []playlist.Track) {
	c.store.Clear()
	c.store.AddTracks(tracks...)
	if c.store.RowCount() > 0 {
		c.PlayTrackAt(0)
	}
}

// Reload re-reads the store from scratch: the index is reset and the first
// row is started when the store is non-empty.
func (c *Coordinator) Reload() {
	c.setIndex(NoIndex)
	if c.store.RowCount() > 0 {
		c.PlayTrackAt(0)
	}
}

// PlayTrackAt loads and starts row index. It returns false and does nothing
// when index is out of range.
func (c *Coordinator) PlayTrackAt(index int) bool {
	c.failures = 0
	return c.playAt(index)
}

func (c *Coordinator) playAt(index int) bool {
	track, err := c.store.TrackAt(index)
	if err != nil {
		return false
	}

	prev := c.index
	c.index = index
	c.loaded = track.Path
	c.loadFailed = false
	c.position = 0
	c.duration = track.Duration

	load, loadErr := c.engine.Load(track.Path)
	c.load = load
	c.engine.Play()

	c.emit(IndexChange{Previous: prev, Index: index})
	c.emit(TrackChange{Track: track, Index: index})

	if loadErr != nil {
		c.loadFailed = true
		c.status = player.InvalidMedia
		c.emit(ErrorEvent{Operation: errmsg.OpPlaybackLoad, Path: track.Path, Err: loadErr})
		c.skipFailed()
	}
	return true
}

// Play starts the first row when nothing is selected, otherwise resumes the
// engine without reloading. It does nothing when no track is loaded, which
// includes an emptied playlist.
func (c *Coordinator) Play() {
	if c.index == NoIndex && c.store.RowCount() > 0 {
		c.PlayTrackAt(0)
		return
	}
	if c.loaded == "" {
		return
	}
	c.engine.Play()
}

// Pause pauses the engine.
func (c *Coordinator) Pause() {
	c.engine.Pause()
}

// Stop stops the engine. The index is kept.
func (c *Coordinator) Stop() {
	c.engine.Stop()
}

// Toggle pauses when playing and plays otherwise.
func (c *Coordinator) Toggle() {
	if c.state == StatePlaying {
		c.Pause()
		return
	}
	c.Play()
}

// Next starts the following row. At the last row it does nothing unless
// wrap is enabled. It reports whether a track was started.
func (c *Coordinator) Next() bool {
	c.failures = 0
	return c.next()
}

func (c *Coordinator) next() bool {
	n := c.store.RowCount()
	switch {
	case c.index+1 < n:
		return c.playAt(c.index + 1)
	case c.wrap && n > 0:
		return c.playAt(0)
	default:
		return false
	}
}

// Previous starts the preceding row. At the first row it does nothing
// unless wrap is enabled. It reports whether a track was started.
func (c *Coordinator) Previous() bool {
	c.failures = 0
	n := c.store.RowCount()
	switch {
	case c.index > 0:
		return c.playAt(c.index - 1)
	case c.wrap && c.index == 0 && n > 0:
		return c.playAt(n - 1)
	default:
		return false
	}
}

// ToggleMute flips the mute state and returns the new value.
func (c *Coordinator) ToggleMute() bool {
	c.muted = !c.muted
	c.engine.SetMuted(c.muted)
	c.emit(MuteChange{Muted: c.muted})
	return c.muted
}

// SetVolume sets the volume percent, clamped to 0-100, and returns the
// value applied.
func (c *Coordinator) SetVolume(percent int) int {
	c.volume = clampVolume(percent)
	c.engine.SetVolume(float64(c.volume) / 100.0)
	c.emit(VolumeChange{Volume: c.volume})
	return c.volume
}

// SetWrap enables or disables wrap-around for Next and Previous.
func (c *Coordinator) SetWrap(wrap bool) {
	if c.wrap == wrap {
		return
	}
	c.wrap = wrap
	c.emit(WrapChange{Wrap: wrap})
}

// SetPosition seeks the loaded track. It does nothing when no track is loaded.
func (c *Coordinator) SetPosition(pos time.Duration) {
	if c.loaded == "" || c.loadFailed {
		return
	}
	pos = max(pos, 0)
	if c.duration > 0 {
		pos = min(pos, c.duration)
	}
	c.engine.Seek(pos)
}

// SeekBy seeks relative to the last reported position.
func (c *Coordinator) SeekBy(delta time.Duration) {
	c.SetPosition(c.position + delta)
}

// CurrentIndex returns the current row, or NoIndex.
func (c *Coordinator) CurrentIndex() int { return c.index }

// PlaylistSize returns the number of rows in the store.
func (c *Coordinator) PlaylistSize() int { return c.store.RowCount() }

// PlaybackState returns the last state reported by the engine.
func (c *Coordinator) PlaybackState() State { return c.state }

// MediaStatus returns the last media status reported by the engine.
func (c *Coordinator) MediaStatus() player.MediaStatus { return c.status }

// CurrentTrack returns the track at the current row.
func (c *Coordinator) CurrentTrack() (playlist.Track, bool) {
	t, err := c.store.TrackAt(c.index)
	return t, err == nil
}

// Position returns the last reported playback position.
func (c *Coordinator) Position() time.Duration { return c.position }

// Duration returns the duration of the current track, if known.
func (c *Coordinator) Duration() time.Duration { return c.duration }

// Volume returns the volume percent.
func (c *Coordinator) Volume() int { return c.volume }

// Muted reports whether output is muted.
func (c *Coordinator) Muted() bool { return c.muted }

// Wrap reports whether Next and Previous wrap around.
func (c *Coordinator) Wrap() bool { return c.wrap }

// Store returns the playlist store the coordinator drives.
func (c *Coordinator) Store() *playlist.Store { return c.store }

// HandleEngineEvent applies one engine event. Events from any load but the
// latest are stale and ignored, even when they name the same path.
func (c *Coordinator) HandleEngineEvent(e player.Event) {
	if c.loaded == "" || e.EventLoad() != c.load {
		return
	}

	switch ev := e.(type) {
	case player.StateChanged:
		c.setState(stateFromPlayer(ev.State))

	case player.PositionChanged:
		c.position = ev.Position
		c.emit(PositionChange{Position: ev.Position})

	case player.DurationChanged:
		c.duration = ev.Duration
		c.recordDuration(ev.Duration)
		c.emit(DurationChange{Duration: ev.Duration})

	case player.StatusChanged:
		c.handleStatus(ev)
	}
}

// Run feeds engine events into HandleEngineEvent until ctx is done or events
// is closed. It is for callers without their own event loop.
func (c *Coordinator) Run(ctx context.Context, events <-chan player.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				return nil
			}
			c.HandleEngineEvent(e)
		}
	}
}

func (c *Coordinator) handleStatus(ev player.StatusChanged) {
	if ev.Status == player.InvalidMedia && c.loadFailed {
		// Already reported when Load returned the error.
		return
	}
	c.status = ev.Status

	switch ev.Status {
	case player.EndOfMedia:
		c.Next()
	case player.InvalidMedia:
		c.emit(ErrorEvent{Operation: errmsg.OpPlaybackDecode, Path: ev.Source, Err: ev.Err})
		c.skipFailed()
	case player.NoMedia, player.Loaded:
	}
}

// skipFailed advances past an unplayable track when enabled. A run of
// failures stops once every row has been tried.
func (c *Coordinator) skipFailed() {
	if !c.skipUnplayable {
		return
	}
	c.failures++
	if c.failures >= c.store.RowCount() {
		return
	}
	c.next()
}

// recordDuration stores the engine-reported duration on the current row.
func (c *Coordinator) recordDuration(d time.Duration) {
	t, err := c.store.TrackAt(c.index)
	if err != nil || t.Path != c.loaded || t.Duration == d {
		return
	}
	t.Duration = d
	_ = c.store.Replace(c.index, t)
}

func (c *Coordinator) onStoreChange(ch playlist.Change) {
	switch ch.Kind {
	case playlist.ModelReset:
		if c.loaded != "" {
			c.engine.Stop()
		}
		c.loaded = ""
		c.load = 0
		c.loadFailed = false
		c.status = player.NoMedia
		c.position = 0
		c.duration = 0
		c.setState(StateStopped)
		c.setIndex(NoIndex)

	case playlist.LayoutChanged:
		if c.index >= 0 && c.index < len(ch.Permutation) {
			c.setIndex(ch.Permutation[c.index])
		}

	case playlist.RowsInserted, playlist.RowsChanged:
	}
}

func (c *Coordinator) setIndex(index int) {
	if index == c.index {
		return
	}
	prev := c.index
	c.index = index
	c.emit(IndexChange{Previous: prev, Index: index})
}

func (c *Coordinator) setState(s State) {
	if s == c.state {
		return
	}
	prev := c.state
	c.state = s
	c.emit(StateChange{Previous: prev, Current: s})
}

func (c *Coordinator) emit(e Event) {
	c.listeners.emit(e)
}

func clampVolume(percent int) int {
	return lo.Clamp(percent, 0, 100)
}
