package notify

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/playlist"
)

// mockNotifier records notifications for testing. Titles in fail are
// rejected with an error.
type mockNotifier struct {
	mu            sync.Mutex
	notifications []Notification
	lastID        uint32
	fail          map[string]bool
}

func (m *mockNotifier) Notify(n Notification) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	if m.fail[n.Title] {
		return 0, errors.New("bus gone")
	}
	m.lastID++
	return m.lastID, nil
}

func (m *mockNotifier) Close(_ uint32) error {
	return nil
}

func TestNowPlayingNotification(t *testing.T) {
	tests := []struct {
		name     string
		track    playlist.Track
		wantBody string
	}{
		{
			name:     "artist and album",
			track:    playlist.Track{Path: "/x/song.mp3", Title: "Song", Artist: "Artist", Album: "Album"},
			wantBody: "Artist · Album",
		},
		{
			name:     "artist only",
			track:    playlist.Track{Path: "/x/song.mp3", Title: "Song", Artist: "Artist"},
			wantBody: "Artist",
		},
		{
			name:     "no tags",
			track:    playlist.NewTrack("/x/song.mp3"),
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NowPlayingNotification(tt.track)
			if n.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", n.Body, tt.wantBody)
			}
			if n.Title != tt.track.Title {
				t.Errorf("Title = %q, want %q", n.Title, tt.track.Title)
			}
			if n.Urgency != UrgencyLow {
				t.Errorf("Urgency = %d, want UrgencyLow", n.Urgency)
			}
		})
	}
}

func TestNowPlayingNotification_AlbumArt(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(cover, []byte{0xFF, 0xD8, 0xFF}, 0o600); err != nil {
		t.Fatal(err)
	}

	n := NowPlayingNotification(playlist.NewTrack(filepath.Join(dir, "01.flac")))
	if n.Icon != cover {
		t.Errorf("Icon = %q, want %q", n.Icon, cover)
	}
}

func TestNowPlaying_ReplacesPrevious(t *testing.T) {
	mock := &mockNotifier{}
	np := NewNowPlaying(mock)

	np.Handle(playback.StateChange{Current: playback.StatePlaying})
	np.Handle(playback.TrackChange{Track: playlist.Track{Title: "One"}, Index: 0})
	np.Handle(playback.TrackChange{Track: playlist.Track{Title: "Two"}, Index: 1})
	np.Close()

	if len(mock.notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(mock.notifications))
	}
	if mock.notifications[0].Title != "One" || mock.notifications[0].ReplacesID != 0 {
		t.Errorf("first = %q replacing %d, want One replacing 0",
			mock.notifications[0].Title, mock.notifications[0].ReplacesID)
	}
	if mock.notifications[1].ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", mock.notifications[1].ReplacesID)
	}
}

func TestNowPlaying_ErrorKeepsLastID(t *testing.T) {
	mock := &mockNotifier{fail: map[string]bool{"Two": true}}
	np := NewNowPlaying(mock)

	np.Handle(playback.TrackChange{Track: playlist.Track{Title: "One"}})
	np.Handle(playback.TrackChange{Track: playlist.Track{Title: "Two"}})
	np.Handle(playback.TrackChange{Track: playlist.Track{Title: "Three"}})
	np.Close()

	if len(mock.notifications) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(mock.notifications))
	}
	if got := mock.notifications[2].ReplacesID; got != 1 {
		t.Errorf("after a failure ReplacesID = %d, want 1", got)
	}
}

// blockingNotifier holds every Notify until release is closed.
type blockingNotifier struct {
	mockNotifier
	release chan struct{}
}

func (b *blockingNotifier) Notify(n Notification) (uint32, error) {
	<-b.release
	return b.mockNotifier.Notify(n)
}

func TestNowPlaying_HandleDoesNotBlock(t *testing.T) {
	slow := &blockingNotifier{release: make(chan struct{})}
	np := NewNowPlaying(slow)

	returned := make(chan struct{})
	go func() {
		for i := range nowPlayingQueue {
			np.Handle(playback.TrackChange{Track: playlist.Track{Title: "T"}, Index: i})
		}
		// Queue is full now; this one is dropped instead of waiting.
		np.Handle(playback.TrackChange{Track: playlist.Track{Title: "extra"}})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Handle blocked on a slow notifier")
	}

	close(slow.release)
	np.Close()
	if n := len(slow.notifications); n < nowPlayingQueue || n > nowPlayingQueue+1 {
		t.Errorf("sent %d notifications, want %d or %d", n, nowPlayingQueue, nowPlayingQueue+1)
	}
}

func TestNowPlaying_CloseIsIdempotent(t *testing.T) {
	np := NewNowPlaying(&mockNotifier{})
	np.Close()
	np.Close()
}
