package notify

import (
	"log"
	"strings"
	"sync"

	"github.com/llehouerou/waveplay/internal/mpris"
	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/playlist"
)

// NowPlayingTimeout is how long a "now playing" notification stays up, in ms.
const NowPlayingTimeout int32 = 5000

// nowPlayingQueue bounds the notifications waiting for the notifier.
const nowPlayingQueue = 16

// NowPlaying shows a desktop notification each time a track starts,
// replacing the previous one. Notifications are sent from a background
// goroutine so a slow notification server never holds up the caller.
type NowPlaying struct {
	notifier Notifier
	queue    chan Notification
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	lastID   uint32 // owned by run
}

// NewNowPlaying starts a listener that notifies through n. Call Close to
// stop it.
func NewNowPlaying(n Notifier) *NowPlaying {
	np := &NowPlaying{
		notifier: n,
		queue:    make(chan Notification, nowPlayingQueue),
		done:     make(chan struct{}),
	}
	np.wg.Add(1)
	go np.run()
	return np
}

// Handle is a playback.Listener. It never blocks; when the queue is full
// the notification is dropped.
func (np *NowPlaying) Handle(e playback.Event) {
	tc, ok := e.(playback.TrackChange)
	if !ok {
		return
	}
	select {
	case np.queue <- NowPlayingNotification(tc.Track):
	default:
		log.Printf("notify: queue full, dropped %q", tc.Track.Title)
	}
}

// Close sends the notifications already queued and stops the worker.
func (np *NowPlaying) Close() {
	np.once.Do(func() { close(np.done) })
	np.wg.Wait()
}

func (np *NowPlaying) run() {
	defer np.wg.Done()
	for {
		select {
		case n := <-np.queue:
			np.send(n)
		case <-np.done:
			for {
				select {
				case n := <-np.queue:
					np.send(n)
				default:
					return
				}
			}
		}
	}
}

func (np *NowPlaying) send(n Notification) {
	n.ReplacesID = np.lastID
	id, err := np.notifier.Notify(n)
	if err != nil {
		log.Printf("notify: %v", err)
		return
	}
	np.lastID = id
}

// NowPlayingNotification builds the notification for track.
func NowPlayingNotification(track playlist.Track) Notification {
	var parts []string
	if track.Artist != "" {
		parts = append(parts, track.Artist)
	}
	if track.Album != "" {
		parts = append(parts, track.Album)
	}

	return Notification{
		Title:   track.Title,
		Body:    strings.Join(parts, " · "),
		Icon:    mpris.FindAlbumArt(track.Path),
		Timeout: NowPlayingTimeout,
		Urgency: UrgencyLow,
	}
}
