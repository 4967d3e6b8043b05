package app

import (
	"fmt"
	"log"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/waveplay/internal/errmsg"
	"github.com/llehouerou/waveplay/internal/player"
	"github.com/llehouerou/waveplay/internal/playlist"
	"github.com/llehouerou/waveplay/internal/tags"
	"github.com/llehouerou/waveplay/internal/ui/styles"
)

// PickerMode selects what happens with the files marked in the picker.
type PickerMode int

const (
	// PickerOpen replaces the playlist and starts the first marked file.
	PickerOpen PickerMode = iota
	// PickerAdd appends the marked files to the playlist.
	PickerAdd
)

// filepicker subtracts this from the height of a WindowSizeMsg
const pickerMarginBottom = 5

func (m *Model) openPicker(mode PickerMode) tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = tags.Extensions
	fp.CurrentDirectory = m.startDir()
	fp.ShowPermissions = false
	fp.AutoHeight = true

	t := styles.T()
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(t.Primary)
	fp.Styles.Selected = fp.Styles.Selected.Foreground(t.Primary)
	fp.Styles.Directory = fp.Styles.Directory.Foreground(t.Secondary)

	m.picker = fp
	m.pickerMode = mode
	m.picked = nil
	m.overlay = OverlayPicker
	m.sizePicker()
	return m.picker.Init()
}

func (m *Model) sizePicker() {
	m.picker, _ = m.picker.Update(tea.WindowSizeMsg{
		Width:  m.width,
		Height: m.pickerHeight() + pickerMarginBottom,
	})
}

func (m *Model) pickerHeight() int {
	// popup border, padding and title
	return max(m.height-12, 3)
}

func (m *Model) startDir() string {
	if isDir(m.lastDir) {
		return m.lastDir
	}
	return "."
}

func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.overlay = OverlayNone
			m.picked = nil
			return nil
		case tea.KeyTab:
			if len(m.picked) == 0 {
				return nil
			}
			m.overlay = OverlayNone
			m.addFiles(m.picked)
			m.picked = nil
			return nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.togglePicked(path)
		return cmd
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		op := errmsg.OpPlaylistAdd
		if m.pickerMode == PickerOpen {
			op = errmsg.OpPlaylistOpen
		}
		m.message = errmsg.FormatWith(op, filepath.Base(path),
			fmt.Errorf("%w: %s", player.ErrUnsupportedFormat, filepath.Ext(path)))
	}
	return cmd
}

// togglePicked marks path, or unmarks it when already marked.
// Marks keep the order they were made in.
func (m *Model) togglePicked(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if i := slices.Index(m.picked, path); i >= 0 {
		m.picked = slices.Delete(m.picked, i, i+1)
		return
	}
	m.picked = append(m.picked, path)
}

func (m *Model) addFiles(paths []string) {
	if len(paths) == 0 {
		return
	}
	tracks := make([]playlist.Track, len(paths))
	for i, path := range paths {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		tracks[i] = playlist.TrackFromFile(path)
		m.lastDir = filepath.Dir(path)
	}
	m.saveSettings()

	switch m.pickerMode {
	case PickerOpen:
		log.Printf("open %d file(s) from %s", len(tracks), m.lastDir)
		m.coord.SetPlaylist(tracks)
	case PickerAdd:
		log.Printf("add %d file(s) from %s", len(tracks), m.lastDir)
		m.store.AddTracks(tracks...)
	}
}
