package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// createMinimalMP3 creates a minimal valid MP3 file for testing.
// Returns MP3 frame header + padding (417 bytes total for 128kbps frame).
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	mp3Frame[3] = 0x00

	if err := os.WriteFile(path, mp3Frame, 0o600); err != nil {
		t.Fatalf("failed to create test MP3: %v", err)
	}
}

func writeID3(t *testing.T, path, title, artist, album, track string) {
	t.Helper()
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("failed to open MP3 for tagging: %v", err)
	}
	defer tag.Close()

	tag.SetTitle(title)
	tag.SetArtist(artist)
	tag.SetAlbum(album)
	tag.SetGenre("Rock")
	tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, track)
	if err := tag.Save(); err != nil {
		t.Fatalf("failed to save ID3 tags: %v", err)
	}
}

func TestTrackNumber(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"5", 5},
		{"5/10", 5},
		{" 7 ", 7},
		{"invalid", 0},
		{"/10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := trackNumber(tt.input); got != tt.want {
				t.Errorf("trackNumber(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadMP3Fallback(t *testing.T) {
	mp3Path := filepath.Join(t.TempDir(), "test.mp3")
	createMinimalMP3(t, mp3Path)
	writeID3(t, mp3Path, "Test Title", "Test Artist", "Test Album", "3/12")

	info, err := readMP3(mp3Path)
	if err != nil {
		t.Fatalf("readMP3 failed: %v", err)
	}
	if info.Title != "Test Title" {
		t.Errorf("Title = %q, want %q", info.Title, "Test Title")
	}
	if info.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want %q", info.Artist, "Test Artist")
	}
	if info.Album != "Test Album" {
		t.Errorf("Album = %q, want %q", info.Album, "Test Album")
	}
	if info.Genre != "Rock" {
		t.Errorf("Genre = %q, want %q", info.Genre, "Rock")
	}
	if info.TrackNumber != 3 {
		t.Errorf("TrackNumber = %d, want %d", info.TrackNumber, 3)
	}
	if info.Path != mp3Path {
		t.Errorf("Path = %q, want %q", info.Path, mp3Path)
	}
}

func TestRead_MP3(t *testing.T) {
	mp3Path := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, mp3Path)
	writeID3(t, mp3Path, "  Padded Title\x01 ", "Artist", "Album", "1")

	info, err := Read(mp3Path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if info.Title != "Padded Title" {
		t.Errorf("Title = %q, want %q", info.Title, "Padded Title")
	}
	if info.Artist != "Artist" {
		t.Errorf("Artist = %q, want %q", info.Artist, "Artist")
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRead_UnsupportedWithoutTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Error("expected error for file without tags")
	}
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/music/a.mp3", true},
		{"/music/a.MP3", true},
		{"/music/b.flac", true},
		{"/music/c.wav", true},
		{"/music/d.ogg", true},
		{"/music/e.m4a", true},
		{"/music/f.opus", false},
		{"/music/cover.jpg", false},
		{"/music/noext", false},
	}
	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
