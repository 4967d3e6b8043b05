//go:build linux

// Package mpris exposes the playback coordinator as an MPRIS media player
// on the D-Bus session bus, so desktop media keys and widgets can drive it.
package mpris

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/waveplay/internal/playback"
)

// Adapter connects the Coordinator to MPRIS over D-Bus.
type Adapter struct {
	ctl    *controller
	server *server.Server
}

// New creates and starts a new MPRIS adapter. It must be called on the
// coordinator's goroutine; D-Bus commands are handed to dispatch.
func New(c *playback.Coordinator, dispatch Dispatcher) (*Adapter, error) {
	ctl := newController(c, dispatch)
	a := &Adapter{
		ctl:    ctl,
		server: server.NewServer("waveplay", &rootAdapter{}, &playerAdapter{ctl: ctl}),
	}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	a.ctl.close()
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "waveplay", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{
		"audio/mpeg", "audio/wav", "audio/ogg", "audio/flac", "audio/mp4",
	}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// LoopStatus extension.
type playerAdapter struct {
	ctl *controller
}

func (p *playerAdapter) Next() error {
	p.ctl.do(func(c *playback.Coordinator) { c.Next() })
	return nil
}

func (p *playerAdapter) Previous() error {
	p.ctl.do(func(c *playback.Coordinator) { c.Previous() })
	return nil
}

func (p *playerAdapter) Pause() error {
	p.ctl.do(func(c *playback.Coordinator) { c.Pause() })
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.ctl.do(func(c *playback.Coordinator) { c.Toggle() })
	return nil
}

func (p *playerAdapter) Stop() error {
	p.ctl.do(func(c *playback.Coordinator) { c.Stop() })
	return nil
}

func (p *playerAdapter) Play() error {
	p.ctl.play()
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	delta := time.Duration(offset) * time.Microsecond
	p.ctl.do(func(c *playback.Coordinator) { c.SeekBy(delta) })
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	p.ctl.setPosition(trackID, time.Duration(position)*time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.ctl.snapshot().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.ctl.snapshot()
	if !snap.HasTrack {
		return types.Metadata{}, nil
	}

	length := snap.Duration
	if length == 0 {
		length = snap.Track.Duration
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(snap.TrackID()),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   snap.Track.Title,
		Album:   snap.Track.Album,
	}
	if snap.Track.Artist != "" {
		meta.Artist = []string{snap.Track.Artist}
	}

	if artPath := FindAlbumArt(snap.Track.Path); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	snap := p.ctl.snapshot()
	if snap.Muted {
		return 0, nil
	}
	return float64(snap.Volume) / 100.0, nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.ctl.setVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctl.snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.ctl.snapshot().CanGoNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.ctl.snapshot().CanGoPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.ctl.snapshot().Size > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.ctl.snapshot().HasTrack, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.ctl.snapshot().HasTrack, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Wrap-around maps to playlist looping.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.ctl.snapshot().Wrap {
		return types.LoopStatusPlaylist, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Single-track looping is not supported and leaves the setting unchanged.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	switch status {
	case types.LoopStatusNone:
		p.ctl.do(func(c *playback.Coordinator) { c.SetWrap(false) })
	case types.LoopStatusPlaylist:
		p.ctl.do(func(c *playback.Coordinator) { c.SetWrap(true) })
	case types.LoopStatusTrack:
	}
	return nil
}
