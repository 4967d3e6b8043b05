package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from an audio file.
// Title is left empty when the file carries none; callers pick their own fallback.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 frames
			return readMP3(path)
		case ExtFLAC:
			return readFLAC(path)
		case ExtM4A, ExtOGG, ExtWAV:
			return readWithTaglib(path)
		}
		return nil, fmt.Errorf("read tags %s: %w", filepath.Base(path), err)
	}

	track, _ := m.Track()
	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		TrackNumber: track,
	}
	t.Sanitize()
	return t, nil
}
