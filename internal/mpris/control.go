package mpris

import (
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/playlist"
)

// Dispatcher runs fn on the goroutine that owns the coordinator.
type Dispatcher func(fn func())

// Snapshot is the coordinator state served to D-Bus clients.
type Snapshot struct {
	State    playback.State
	Track    playlist.Track
	HasTrack bool
	Index    int
	Size     int
	Position time.Duration
	Duration time.Duration
	Volume   int
	Muted    bool
	Wrap     bool
}

// CanGoNext reports whether Next would start a track.
func (s Snapshot) CanGoNext() bool {
	return s.Index+1 < s.Size || (s.Wrap && s.Size > 0)
}

// CanGoPrevious reports whether Previous would start a track.
func (s Snapshot) CanGoPrevious() bool {
	return s.Index > 0 || (s.Wrap && s.Index == 0 && s.Size > 0)
}

// TrackID returns the MPRIS object path of the current track.
func (s Snapshot) TrackID() string {
	if !s.HasTrack {
		return "/org/mpris/MediaPlayer2/TrackList/NoTrack"
	}
	return formatTrackID(s.Track.Path)
}

func takeSnapshot(c *playback.Coordinator) Snapshot {
	track, ok := c.CurrentTrack()
	return Snapshot{
		State:    c.PlaybackState(),
		Track:    track,
		HasTrack: ok,
		Index:    c.CurrentIndex(),
		Size:     c.PlaylistSize(),
		Position: c.Position(),
		Duration: c.Duration(),
		Volume:   c.Volume(),
		Muted:    c.Muted(),
		Wrap:     c.Wrap(),
	}
}

// controller lets D-Bus goroutines read a copy of the coordinator state
// and queue commands onto the coordinator's goroutine.
type controller struct {
	coord    *playback.Coordinator
	dispatch Dispatcher

	mu   sync.RWMutex
	snap Snapshot

	unsubscribe func()
}

// newController must be called on the coordinator's goroutine.
func newController(c *playback.Coordinator, dispatch Dispatcher) *controller {
	ct := &controller{coord: c, dispatch: dispatch}
	ct.refresh()
	ct.unsubscribe = c.Subscribe(func(playback.Event) { ct.refresh() })
	return ct
}

func (ct *controller) refresh() {
	snap := takeSnapshot(ct.coord)
	ct.mu.Lock()
	ct.snap = snap
	ct.mu.Unlock()
}

func (ct *controller) snapshot() Snapshot {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.snap
}

func (ct *controller) do(fn func(c *playback.Coordinator)) {
	ct.dispatch(func() { fn(ct.coord) })
}

func (ct *controller) play() {
	ct.do(func(c *playback.Coordinator) {
		if c.PlaybackState() != playback.StatePlaying {
			c.Play()
		}
	})
}

func (ct *controller) setVolume(level float64) {
	percent := int(math.Round(level * 100))
	ct.do(func(c *playback.Coordinator) { c.SetVolume(percent) })
}

// setPosition ignores requests for a track that is no longer current.
func (ct *controller) setPosition(trackID string, pos time.Duration) {
	ct.do(func(c *playback.Coordinator) {
		if takeSnapshot(c).TrackID() != trackID {
			return
		}
		c.SetPosition(pos)
	})
}

func (ct *controller) close() {
	if ct.unsubscribe != nil {
		ct.unsubscribe()
		ct.unsubscribe = nil
	}
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
