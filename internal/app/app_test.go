package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/waveplay/internal/config"
	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/state"
	"github.com/llehouerou/waveplay/internal/ui/testutil"
)

func intPtr(v int) *int { return &v }

func newTestModel(t *testing.T, cfg *config.Config, opts ...playback.Option) (*Model, *player.Mock, *state.Mock) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	eng := player.NewMock()
	st := state.NewMock()
	m := New(cfg, eng, st, opts...)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, eng, st
}

// pump feeds queued engine events through Update, as the listen command would.
func pump(m *Model, eng *player.Mock) {
	for {
		events := eng.Drain()
		if len(events) == 0 {
			return
		}
		for _, e := range events {
			m.Update(EngineEventMsg{Event: e})
		}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func loaded(t *testing.T, names ...string) (*Model, *player.Mock, *state.Mock) {
	t.Helper()
	m, eng, st := newTestModel(t, nil)
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = "/music/" + n + ".mp3"
	}
	m.Load(paths)
	pump(m, eng)
	return m, eng, st
}

func TestNew_SettingsPriority(t *testing.T) {
	cfg := &config.Config{Playback: config.PlaybackConfig{Volume: intPtr(80)}}

	m, eng, _ := newTestModel(t, cfg)
	assert.Equal(t, 80, m.Coordinator().Volume(), "config volume without saved state")
	assert.InDelta(t, 0.8, eng.Volume(), 0.001)

	eng2 := player.NewMock()
	st := state.NewMock()
	st.SetSettings(&state.Settings{Volume: 30, Muted: true})
	m = New(cfg, eng2, st)
	assert.Equal(t, 30, m.Coordinator().Volume(), "saved volume wins over config")
	assert.True(t, m.Coordinator().Muted())
	assert.True(t, eng2.Muted())

	m = New(cfg, player.NewMock(), st, playback.WithVolume(90))
	assert.Equal(t, 90, m.Coordinator().Volume(), "options win over saved state")
}

func TestNew_LabelsFollowLanguage(t *testing.T) {
	m, _, _ := newTestModel(t, &config.Config{Language: "de"})
	m.Load([]string{"/x/a.mp3"})

	assert.Contains(t, testutil.StripANSI(m.View()), "Künstler")
}

func TestLoad_StartsFirstTrack(t *testing.T) {
	m, _, _ := loaded(t, "alpha", "bravo")

	c := m.Coordinator()
	assert.Equal(t, 0, c.CurrentIndex())
	assert.Equal(t, playback.StatePlaying, c.PlaybackState())
	assert.Equal(t, 0, m.table.Current())

	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Status: Playing - Track 1/2")
	assert.Contains(t, view, "bravo")
}

func TestView_Empty(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	view := testutil.StripANSI(m.View())
	assert.Contains(t, view, "Playlist is empty")
	assert.Contains(t, view, "Status: Stopped")
	assert.LessOrEqual(t, len(testutil.SplitLines(view)), 30)
}

func TestKeys_Transport(t *testing.T) {
	m, eng, _ := loaded(t, "a", "b", "c")
	c := m.Coordinator()

	press(m, " ")
	pump(m, eng)
	assert.Equal(t, playback.StatePaused, c.PlaybackState())

	press(m, " ")
	pump(m, eng)
	assert.Equal(t, playback.StatePlaying, c.PlaybackState())

	press(m, "n", "n")
	pump(m, eng)
	assert.Equal(t, 2, c.CurrentIndex())
	assert.Equal(t, 2, m.table.Current())

	press(m, "p")
	pump(m, eng)
	assert.Equal(t, 1, c.CurrentIndex())

	press(m, "s")
	pump(m, eng)
	assert.Equal(t, playback.StateStopped, c.PlaybackState())
	assert.Equal(t, 1, c.CurrentIndex(), "stop keeps the index")
}

func TestKeys_PlaySelectedRow(t *testing.T) {
	m, eng, _ := loaded(t, "a", "b", "c")

	press(m, "j", "j", "enter")
	pump(m, eng)

	assert.Equal(t, 2, m.Coordinator().CurrentIndex())
	assert.Equal(t, "/music/c.mp3", eng.Source())
}

func TestKeys_Seek(t *testing.T) {
	m, eng, _ := loaded(t, "a")
	eng.ResetCalls()

	press(m, "right")
	pump(m, eng)
	press(m, "left", "left")

	require.Len(t, eng.Seeks(), 3)
	assert.Equal(t, 5*time.Second, eng.Seeks()[0])
	assert.Equal(t, time.Duration(0), eng.Seeks()[1])
}

func TestKeys_VolumeAndMute(t *testing.T) {
	m, eng, st := newTestModel(t, nil)
	c := m.Coordinator()

	press(m, "+")
	assert.Equal(t, 55, c.Volume())
	press(m, "-", "-")
	assert.Equal(t, 45, c.Volume())
	assert.InDelta(t, 0.45, eng.Volume(), 0.001)

	press(m, "m")
	assert.True(t, c.Muted())

	saved, err := st.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, 45, saved.Volume)
	assert.True(t, saved.Muted)
	assert.Equal(t, 4, st.Saves())
}

func TestKeys_ToggleWrap(t *testing.T) {
	m, eng, _ := loaded(t, "a", "b")

	press(m, "w")
	require.True(t, m.Coordinator().Wrap())

	press(m, "n", "n")
	pump(m, eng)
	assert.Equal(t, 0, m.Coordinator().CurrentIndex(), "wrapped back to the first row")
}

func TestKeys_SortKeepsPlayingTrack(t *testing.T) {
	m, eng, _ := loaded(t, "charlie", "alpha", "bravo")

	press(m, "1")
	assert.Equal(t, 2, m.Coordinator().CurrentIndex())
	assert.Equal(t, 2, m.table.Current())

	press(m, "1")
	assert.Equal(t, 0, m.Coordinator().CurrentIndex(), "second press flips the order")

	eng.ResetCalls()
	press(m, "n")
	pump(m, eng)
	assert.Equal(t, "/music/bravo.mp3", eng.Source())
}

func TestKeys_Clear(t *testing.T) {
	m, eng, _ := loaded(t, "a", "b")

	press(m, "c")
	pump(m, eng)

	c := m.Coordinator()
	assert.Equal(t, 0, m.Store().RowCount())
	assert.Equal(t, playback.NoIndex, c.CurrentIndex())
	assert.Equal(t, playback.StateStopped, c.PlaybackState())
	assert.Equal(t, -1, m.table.Current())
}

func TestFind(t *testing.T) {
	m, eng, _ := loaded(t, "alpha", "bravo", "charlie")

	press(m, "/")
	require.Equal(t, OverlayFind, m.Overlay())
	assert.Contains(t, testutil.StripANSI(m.View()), "Find track by title")

	press(m, "B", "R", "A", "V", "O")
	cmd := press(m, "enter")
	m.Update(testutil.ExecuteCmd(cmd))
	pump(m, eng)

	assert.Equal(t, OverlayNone, m.Overlay())
	assert.Equal(t, 1, m.Coordinator().CurrentIndex())
	assert.Equal(t, "/music/bravo.mp3", eng.Source())
}

func TestFind_NoMatch(t *testing.T) {
	m, _, _ := loaded(t, "alpha")

	press(m, "/", "z", "z")
	m.Update(testutil.ExecuteCmd(press(m, "enter")))

	assert.Equal(t, 0, m.Coordinator().CurrentIndex())
	assert.Contains(t, m.Message(), "Failed to find track 'zz'")
	assert.Contains(t, testutil.StripANSI(m.View()), "Failed to find track")
}

func TestFind_Cancel(t *testing.T) {
	m, _, _ := loaded(t, "alpha")

	press(m, "/", "x")
	m.Update(testutil.ExecuteCmd(press(m, "esc")))

	assert.Equal(t, OverlayNone, m.Overlay())
	assert.Empty(t, m.Message())
}

func TestHelpOverlay(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	press(m, "?")
	require.Equal(t, OverlayHelp, m.Overlay())
	assert.Contains(t, testutil.StripANSI(m.View()), "Playback")

	// transport keys are swallowed by the popup
	press(m, "+")
	assert.Equal(t, playback.DefaultVolume, m.Coordinator().Volume())

	m.Update(testutil.ExecuteCmd(press(m, "esc")))
	assert.Equal(t, OverlayNone, m.Overlay())
}

func TestLoadError_ShowsMessage(t *testing.T) {
	m, eng, _ := newTestModel(t, nil)
	eng.SetLoadError("/music/bad.mp3", errors.New("boom"))

	m.Load([]string{"/music/bad.mp3"})
	pump(m, eng)

	assert.Equal(t, "Failed to load track: boom", m.Message())
	assert.Contains(t, testutil.StripANSI(m.View()), "Failed to load track: boom")
}

func TestPicker(t *testing.T) {
	m, _, st := newTestModel(t, nil)

	cmd := press(m, "o")
	require.Equal(t, OverlayPicker, m.Overlay())
	assert.NotNil(t, cmd, "picker reads its directory")
	assert.Contains(t, testutil.StripANSI(m.View()), "Open files")

	press(m, "esc")
	assert.Equal(t, OverlayNone, m.Overlay())

	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp3")
	b := filepath.Join(dir, "b.mp3")
	for _, p := range []string{a, b} {
		require.NoError(t, os.WriteFile(p, nil, 0o600))
	}

	m.pickerMode = PickerAdd
	m.addFiles([]string{a})
	m.addFiles([]string{a, b})
	assert.Equal(t, 3, m.Store().RowCount())
	assert.Equal(t, playback.NoIndex, m.Coordinator().CurrentIndex(), "add does not start playback")

	m.pickerMode = PickerOpen
	m.addFiles([]string{b, a})
	assert.Equal(t, 2, m.Store().RowCount())
	assert.Equal(t, 0, m.Coordinator().CurrentIndex())
	assert.Equal(t, b, m.Store().Tracks()[0].Path)

	m.addFiles(nil)
	assert.Equal(t, 2, m.Store().RowCount(), "nothing marked keeps the playlist")

	saved, _ := st.GetSettings()
	require.NotNil(t, saved)
	assert.Equal(t, dir, saved.LastDir)
	assert.Equal(t, dir, m.startDir())
}

func TestPicker_TogglePicked(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	m.togglePicked("/music/a.mp3")
	m.togglePicked("/music/b.mp3")
	m.togglePicked("/music/c.mp3")
	m.togglePicked("/music/b.mp3")

	assert.Equal(t, []string{"/music/a.mp3", "/music/c.mp3"}, m.picked)
}

func TestPicker_MarksSeveralFilesBeforeConfirming(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	dir := t.TempDir()
	for _, name := range []string{"a.mp3", "b.mp3", "c.flac"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	m.lastDir = dir

	cmd := press(m, "a")
	require.NotNil(t, cmd)
	m.Update(cmd())

	press(m, "enter", "j", "enter")
	assert.Equal(t, OverlayPicker, m.Overlay(), "marking keeps the picker open")
	assert.Equal(t, 0, m.Store().RowCount())
	assert.Contains(t, testutil.StripANSI(m.View()), "2 marked: a.mp3, b.mp3")

	press(m, "tab")
	assert.Equal(t, OverlayNone, m.Overlay())
	require.Equal(t, 2, m.Store().RowCount())
	assert.Equal(t, filepath.Join(dir, "a.mp3"), m.Store().Tracks()[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.mp3"), m.Store().Tracks()[1].Path)
	assert.Nil(t, m.picked)
}

func TestPicker_TabWithoutMarksStaysOpen(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	press(m, "o")
	m.picked = nil
	press(m, "tab")
	assert.Equal(t, OverlayPicker, m.Overlay())

	m.togglePicked("/music/a.mp3")
	press(m, "esc")
	assert.Equal(t, OverlayNone, m.Overlay())
	assert.Nil(t, m.picked, "cancel drops the marks")
	assert.Equal(t, 0, m.Store().RowCount())
}

func TestEngineEventsFlowThroughCommands(t *testing.T) {
	m, eng, _ := newTestModel(t, nil)
	m.Load([]string{"/music/a.mp3"})

	msg := testutil.ExecuteCmd(m.Init())
	ev, ok := msg.(EngineEventMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "/music/a.mp3", ev.Event.EventSource())

	_, cmd := m.Update(ev)
	assert.NotNil(t, cmd, "listening continues after each event")

	eng.Drain()
	require.NoError(t, eng.Close())
	assert.IsType(t, EngineClosedMsg{}, testutil.ExecuteCmd(cmd))
}

type fakeSender struct{ msgs []tea.Msg }

func (f *fakeSender) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestDispatcher(t *testing.T) {
	m, _, _ := loaded(t, "a", "b")
	sender := &fakeSender{}

	Dispatcher(sender)(func() { m.Coordinator().Next() })
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, 0, m.Coordinator().CurrentIndex(), "nothing runs until Update")

	m.Update(sender.msgs[0])
	assert.Equal(t, 1, m.Coordinator().CurrentIndex())
}

func TestQuit(t *testing.T) {
	m, _, st := loaded(t, "a")

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Positive(t, st.Saves())

	// store changes no longer reach the closed table
	m.Store().Clear()
	assert.Equal(t, 1, m.table.Len())
}
