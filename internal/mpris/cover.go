package mpris

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/llehouerou/waveplay/internal/config"
	"github.com/llehouerou/waveplay/internal/tags"
)

// coverNames lists album art base names in priority order.
var coverNames = []string{"cover", "folder", "album", "front"}

var coverExts = []string{".jpg", ".jpeg", ".png"}

// coverCachePath returns where an extracted cover named name is stored.
var coverCachePath = func(name string) (string, error) {
	return xdg.CacheFile(filepath.Join(config.AppName, "covers", name))
}

// FindAlbumArt returns an image file for the track's album art. An image
// next to the track wins; names are matched case-insensitively, so
// Cover.JPG is found too. Otherwise the embedded cover is written to the
// cache directory and that file is returned. It returns "" when the track
// has no art.
func FindAlbumArt(trackPath string) string {
	if p := folderArt(filepath.Dir(trackPath)); p != "" {
		return p
	}
	p, err := embeddedArt(trackPath)
	if err != nil {
		log.Printf("mpris: cover for %s: %v", trackPath, err)
		return ""
	}
	return p
}

func folderArt(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			files[strings.ToLower(e.Name())] = e.Name()
		}
	}

	for _, name := range coverNames {
		for _, ext := range coverExts {
			if actual, ok := files[name+ext]; ok {
				return filepath.Join(dir, actual)
			}
		}
	}
	return ""
}

// embeddedArt extracts the embedded cover into the cache. Files are named
// by content hash, so tracks of one album share a file.
func embeddedArt(trackPath string) (string, error) {
	if _, err := os.Stat(trackPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	cover, err := tags.EmbeddedCover(trackPath)
	if err != nil || cover == nil {
		// Unreadable tags just mean no art.
		return "", nil //nolint:nilerr // missing art is not an error
	}

	sum := sha256.Sum256(cover.Data)
	path, err := coverCachePath(hex.EncodeToString(sum[:16]) + cover.Ext())
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, cover.Data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
