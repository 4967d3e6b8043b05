package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/waveplay/internal/icons"
	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/playlist"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"playing", State{Status: playback.StatePlaying, Index: 1, Total: 3}, "Status: Playing - Track 2/3"},
		{"paused first", State{Status: playback.StatePaused, Index: 0, Total: 1}, "Status: Paused - Track 1/1"},
		{"no selection", State{Status: playback.StateStopped, Index: playback.NoIndex, Total: 4}, "Status: Stopped"},
		{"empty", State{Status: playback.StateStopped, Index: playback.NoIndex}, "Status: Stopped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusText(tt.state); got != tt.want {
				t.Errorf("StatusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeText(t *testing.T) {
	s := State{Position: 83 * time.Second, Duration: 296 * time.Second}
	if got := TimeText(s); got != "01:23 / 04:56" {
		t.Errorf("TimeText() = %q, want 01:23 / 04:56", got)
	}
}

func TestVolumeText(t *testing.T) {
	icons.Init("none")
	defer icons.Init("unicode")

	if got := VolumeText(State{Volume: 50}); got != "vol  50%" {
		t.Errorf("VolumeText() = %q", got)
	}
	if got := VolumeText(State{Volume: 100, Muted: true}); got != "mute 100%" {
		t.Errorf("VolumeText(muted) = %q", got)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		pos, dur time.Duration
		want     float64
	}{
		{0, 0, 0},
		{time.Second, 0, 0},
		{30 * time.Second, time.Minute, 0.5},
		{2 * time.Minute, time.Minute, 1},
		{-time.Second, time.Minute, 0},
	}
	for _, tt := range tests {
		if got := ratio(tt.pos, tt.dur); got != tt.want {
			t.Errorf("ratio(%v, %v) = %v, want %v", tt.pos, tt.dur, got, tt.want)
		}
	}
}

func TestNewState(t *testing.T) {
	m := player.NewMock()
	c := playback.New(playlist.NewStore(), m, playback.WithVolume(70))
	defer c.Close()

	c.SetPlaylist([]playlist.Track{
		{Path: "/a.mp3", Title: "A", Artist: "Band"},
		{Path: "/b.mp3", Title: "B"},
	})
	for _, e := range m.Drain() {
		c.HandleEngineEvent(e)
	}
	c.HandleEngineEvent(player.DurationChanged{Source: "/a.mp3", Load: m.LastLoad(), Duration: 3 * time.Minute})

	s := NewState(c)
	if s.Title != "A" || s.Artist != "Band" {
		t.Errorf("track = %q/%q", s.Title, s.Artist)
	}
	if s.Status != playback.StatePlaying || s.Index != 0 || s.Total != 2 {
		t.Errorf("state = %+v", s)
	}
	if s.Duration != 3*time.Minute || s.Volume != 70 {
		t.Errorf("duration/volume = %v/%d", s.Duration, s.Volume)
	}
}

func TestView(t *testing.T) {
	s := State{
		Status:   playback.StatePlaying,
		Index:    1,
		Total:    3,
		Title:    "Song",
		Artist:   "Artist",
		Position: 10 * time.Second,
		Duration: time.Minute,
		Volume:   50,
	}

	out := New().View(s, 80)
	plain := ansi.Strip(out)

	for _, want := range []string{"Song", "Artist", "00:10 / 01:00", "Status: Playing - Track 2/3", "50%"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
	if h := lipgloss.Height(out); h != Height {
		t.Errorf("height = %d, want %d", h, Height)
	}
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 80 {
			t.Errorf("line %d width = %d, exceeds 80", i, w)
		}
	}
}

func TestView_ErrorMessage(t *testing.T) {
	s := State{Status: playback.StateStopped, Index: playback.NoIndex, Message: "Failed to load track: bad header"}

	plain := ansi.Strip(New().View(s, 60))
	if !strings.Contains(plain, "Failed to load track") {
		t.Errorf("error message not shown:\n%s", plain)
	}
	if strings.Contains(plain, "Status:") {
		t.Error("status line should be replaced by the message")
	}
	if !strings.Contains(plain, "No track") {
		t.Error("expected placeholder for missing track")
	}
}
