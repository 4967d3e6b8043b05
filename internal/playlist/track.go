package playlist

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/waveplay/internal/tags"
)

// Track represents a single track in a playlist.
type Track struct {
	Path     string // file path for playback
	Title    string
	Artist   string
	Album    string
	Duration time.Duration // zero until the engine reports it
}

// NewTrack creates a track for path with the title defaulted to the file
// base name without extension.
func NewTrack(path string) Track {
	return Track{
		Path:  path,
		Title: baseTitle(path),
	}
}

// TrackFromFile creates a track for path, filling title, artist and album
// from the file tags when they can be read. Unreadable files fall back to
// NewTrack defaults.
func TrackFromFile(path string) Track {
	t := NewTrack(path)
	info, err := tags.Read(path)
	if err != nil {
		return t
	}
	if info.Title != "" {
		t.Title = info.Title
	}
	t.Artist = info.Artist
	t.Album = info.Album
	return t
}

// TracksFromFiles builds tracks for each path in order.
func TracksFromFiles(paths []string) []Track {
	tracks := make([]Track, 0, len(paths))
	for _, p := range paths {
		tracks = append(tracks, TrackFromFile(p))
	}
	return tracks
}

// FormattedDuration returns the duration as mm:ss.
func (t Track) FormattedDuration() string {
	return FormatDuration(t.Duration)
}

// FormatDuration formats d as mm:ss. Minutes are not wrapped at 60 and are
// zero padded to two digits. Negative durations format as 00:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func baseTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
