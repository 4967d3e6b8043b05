// Package app is the root bubbletea model. It owns the playlist store and
// the playback coordinator and renders the playlist table, the player bar
// and the popups.
package app

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/waveplay/internal/config"
	"github.com/llehouerou/waveplay/internal/errmsg"
	"github.com/llehouerou/waveplay/internal/keymap"
	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/playlist"
	"github.com/llehouerou/waveplay/internal/state"
	"github.com/llehouerou/waveplay/internal/ui/helpbindings"
	"github.com/llehouerou/waveplay/internal/ui/playerbar"
	"github.com/llehouerou/waveplay/internal/ui/playlisttable"
	"github.com/llehouerou/waveplay/internal/ui/textinput"
)

// VolumeStep is the volume change per key press, in percent.
const VolumeStep = 5

// Overlay identifies the popup drawn over the main view.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayFind
	OverlayPicker
)

// Model is the root application model.
type Model struct {
	engine player.Engine
	state  state.Interface
	store  *playlist.Store
	coord  *playback.Coordinator
	keys   *keymap.Resolver

	table *playlisttable.Model
	bar   playerbar.Model
	help  helpbindings.Model
	find  textinput.Model

	picker     filepicker.Model
	pickerMode PickerMode
	picked     []string

	overlay  Overlay
	message  string // last error shown in the status line
	lastDir  string
	seekStep time.Duration

	width, height int
	unsubscribe   func()
}

// New creates the application model. Saved settings override the config
// file; opts override both.
func New(cfg *config.Config, engine player.Engine, st state.Interface, opts ...playback.Option) *Model {
	pb := cfg.GetPlaybackConfig()
	coordOpts := []playback.Option{
		playback.WithVolume(*pb.Volume),
		playback.WithWrap(pb.Wrap),
		playback.WithSkipUnplayable(pb.SkipUnplayable),
	}

	lastDir := cfg.DefaultFolder
	saved, err := st.GetSettings()
	if err != nil {
		log.Printf("%s", errmsg.Format(errmsg.OpStateLoad, err))
	}
	if saved != nil {
		coordOpts = append(coordOpts, playback.WithVolume(saved.Volume), playback.WithMuted(saved.Muted))
		if isDir(saved.LastDir) {
			lastDir = saved.LastDir
		}
	}
	coordOpts = append(coordOpts, opts...)

	store := playlist.NewStore()
	store.SetLabels(playlist.LabelsFor(cfg.Language))

	m := &Model{
		engine:   engine,
		state:    st,
		store:    store,
		coord:    playback.New(store, engine, coordOpts...),
		keys:     keymap.NewResolver(keymap.Bindings),
		table:    playlisttable.New(store),
		bar:      playerbar.New(),
		help:     helpbindings.New(),
		find:     textinput.New(),
		lastDir:  lastDir,
		seekStep: time.Duration(pb.SeekStep) * time.Second,
	}
	m.unsubscribe = m.coord.Subscribe(m.onPlaybackEvent)
	return m
}

// Coordinator returns the playback coordinator, for integrations that
// subscribe to it or drive it through a dispatcher.
func (m *Model) Coordinator() *playback.Coordinator { return m.coord }

// Store returns the playlist store.
func (m *Model) Store() *playlist.Store { return m.store }

// Overlay returns the popup currently shown.
func (m *Model) Overlay() Overlay { return m.overlay }

// Message returns the error shown in the status line, if any.
func (m *Model) Message() string { return m.message }

// Load replaces the playlist with paths and starts the first track.
func (m *Model) Load(paths []string) {
	if len(paths) == 0 {
		return
	}
	m.coord.SetPlaylist(playlist.TracksFromFiles(paths))
	m.lastDir = filepath.Dir(paths[0])
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.listenEngine()
}

// Close detaches the model from the coordinator and the store and flushes
// settings. The engine and the state manager are owned by the caller.
func (m *Model) Close() {
	m.saveSettings()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.table.Close()
	m.coord.Close()
}

func (m *Model) onPlaybackEvent(e playback.Event) {
	switch e := e.(type) {
	case playback.IndexChange:
		m.table.SetCurrent(e.Index)
	case playback.TrackChange:
		m.message = ""
	case playback.ErrorEvent:
		m.message = e.Message()
		log.Printf("%s (%s)", m.message, e.Path)
	case playback.VolumeChange, playback.MuteChange:
		m.saveSettings()
	}
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
