package mpris

import (
	"testing"
	"time"

	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/playlist"
)

// queue collects dispatched closures until run is called.
type queue struct {
	pending []func()
}

func (q *queue) dispatch(fn func()) { q.pending = append(q.pending, fn) }

func (q *queue) run() {
	for len(q.pending) > 0 {
		fn := q.pending[0]
		q.pending = q.pending[1:]
		fn()
	}
}

func setup(t *testing.T, paths ...string) (*controller, *playback.Coordinator, *player.Mock, *queue) {
	t.Helper()
	m := player.NewMock()
	c := playback.New(playlist.NewStore(), m)
	q := &queue{}
	ct := newController(c, q.dispatch)
	t.Cleanup(func() {
		ct.close()
		c.Close()
	})

	tracks := make([]playlist.Track, 0, len(paths))
	for _, p := range paths {
		tracks = append(tracks, playlist.NewTrack(p))
	}
	if len(tracks) > 0 {
		c.SetPlaylist(tracks)
		for _, e := range m.Drain() {
			c.HandleEngineEvent(e)
		}
	}
	return ct, c, m, q
}

func TestController_SnapshotFollowsCoordinator(t *testing.T) {
	ct, c, _, _ := setup(t, "/music/a.mp3", "/music/b.mp3")

	snap := ct.snapshot()
	if !snap.HasTrack || snap.Track.Title != "a" {
		t.Errorf("snapshot track = %+v (has %v), want a", snap.Track, snap.HasTrack)
	}
	if snap.State != playback.StatePlaying {
		t.Errorf("snapshot state = %v, want Playing", snap.State)
	}
	if snap.Size != 2 || snap.Index != 0 {
		t.Errorf("snapshot size/index = %d/%d, want 2/0", snap.Size, snap.Index)
	}

	c.SetVolume(30)
	if got := ct.snapshot().Volume; got != 30 {
		t.Errorf("snapshot volume = %d, want 30", got)
	}
}

func TestController_CommandsRunOnDispatch(t *testing.T) {
	ct, c, _, q := setup(t, "/music/a.mp3", "/music/b.mp3")

	ct.do(func(c *playback.Coordinator) { c.Next() })
	if c.CurrentIndex() != 0 {
		t.Fatal("command ran before dispatch")
	}

	q.run()
	if c.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d after dispatch, want 1", c.CurrentIndex())
	}
	if ct.snapshot().Index != 1 {
		t.Errorf("snapshot index = %d, want 1", ct.snapshot().Index)
	}
}

func TestController_PlayDoesNotRestart(t *testing.T) {
	ct, c, m, q := setup(t, "/music/a.mp3")
	m.ResetCalls()

	ct.play()
	q.run()

	if c.PlaybackState() != playback.StatePlaying {
		t.Errorf("state = %v, want Playing", c.PlaybackState())
	}
	for _, call := range m.Calls() {
		if call == "play" {
			t.Error("Play while playing should not reach the engine")
		}
	}
}

func TestController_SetVolume(t *testing.T) {
	ct, c, _, q := setup(t)

	ct.setVolume(0.456)
	q.run()
	if c.Volume() != 46 {
		t.Errorf("Volume() = %d, want 46", c.Volume())
	}

	ct.setVolume(3)
	q.run()
	if c.Volume() != 100 {
		t.Errorf("Volume() = %d, want clamped 100", c.Volume())
	}
}

func TestController_SetPositionChecksTrack(t *testing.T) {
	ct, c, m, q := setup(t, "/music/a.mp3", "/music/b.mp3")
	c.HandleEngineEvent(player.DurationChanged{Source: "/music/a.mp3", Load: m.LastLoad(), Duration: time.Minute})

	ct.setPosition(formatTrackID("/music/b.mp3"), 10*time.Second)
	q.run()
	if len(m.Seeks()) != 0 {
		t.Errorf("seek for another track reached the engine: %v", m.Seeks())
	}

	ct.setPosition(ct.snapshot().TrackID(), 10*time.Second)
	q.run()
	if seeks := m.Seeks(); len(seeks) != 1 || seeks[0] != 10*time.Second {
		t.Errorf("Seeks() = %v, want [10s]", seeks)
	}
}

func TestSnapshot_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		wantNext bool
		wantPrev bool
	}{
		{"empty", Snapshot{Index: -1}, false, false},
		{"first of three", Snapshot{Index: 0, Size: 3}, true, false},
		{"middle", Snapshot{Index: 1, Size: 3}, true, true},
		{"last", Snapshot{Index: 2, Size: 3}, false, true},
		{"last with wrap", Snapshot{Index: 2, Size: 3, Wrap: true}, true, true},
		{"first with wrap", Snapshot{Index: 0, Size: 3, Wrap: true}, true, true},
		{"no selection", Snapshot{Index: -1, Size: 2}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.CanGoNext(); got != tt.wantNext {
				t.Errorf("CanGoNext() = %v, want %v", got, tt.wantNext)
			}
			if got := tt.snap.CanGoPrevious(); got != tt.wantPrev {
				t.Errorf("CanGoPrevious() = %v, want %v", got, tt.wantPrev)
			}
		})
	}
}

func TestSnapshot_TrackID(t *testing.T) {
	if got := (Snapshot{}).TrackID(); got != "/org/mpris/MediaPlayer2/TrackList/NoTrack" {
		t.Errorf("TrackID() without track = %q", got)
	}

	a := Snapshot{HasTrack: true, Track: playlist.Track{Path: "/a.mp3"}}
	b := Snapshot{HasTrack: true, Track: playlist.Track{Path: "/b.mp3"}}
	if a.TrackID() == b.TrackID() {
		t.Error("different paths should give different track IDs")
	}
	if a.TrackID() != formatTrackID("/a.mp3") {
		t.Error("TrackID() should be stable for a path")
	}
}
