// Package tags reads descriptive metadata (title, artist, album) from audio files.
// It tries dhowden/tag first and falls back to format-specific readers for files
// that library cannot parse.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llehouerou/waveplay/internal/ui/render"
)

// File extensions accepted by the file-selection layer.
const (
	ExtMP3  = ".mp3"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
)

// Extensions is the allow-list of audio file extensions, in display order.
var Extensions = []string{ExtMP3, ExtWAV, ExtOGG, ExtFLAC, ExtM4A}

// Tag holds the metadata shown in the playlist.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	Genre       string
	TrackNumber int
}

// Sanitize trims whitespace and strips control characters from all text fields.
func (t *Tag) Sanitize() {
	t.Title = strings.TrimSpace(render.Sanitize(t.Title))
	t.Artist = strings.TrimSpace(render.Sanitize(t.Artist))
	t.Album = strings.TrimSpace(render.Sanitize(t.Album))
	t.Genre = strings.TrimSpace(render.Sanitize(t.Genre))
}

// IsAudioFile reports whether path has an allowed audio extension.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// trackNumber parses "N" or "N/M" and returns N.
func trackNumber(s string) int {
	if idx := strings.Index(s, "/"); idx > 0 {
		s = s[:idx]
	}
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
