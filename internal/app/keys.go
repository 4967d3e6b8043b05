package app

import (
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/waveplay/internal/errmsg"
	"github.com/llehouerou/waveplay/internal/keymap"
	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/playlist"
)

var errNoMatch = errors.New("no track with that title")

var sortColumns = map[keymap.Action]playlist.Column{
	keymap.ActionSortTitle:    playlist.ColumnTitle,
	keymap.ActionSortArtist:   playlist.ColumnArtist,
	keymap.ActionSortAlbum:    playlist.ColumnAlbum,
	keymap.ActionSortDuration: playlist.ColumnDuration,
}

//nolint:cyclop // flat dispatch table
func (m *Model) runAction(act keymap.Action) tea.Cmd {
	c := m.coord

	switch act {
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionHelp:
		m.overlay = OverlayHelp
		m.help.SetSize(m.width, m.height)
	case keymap.ActionFind:
		m.find.Start("Find track by title", "", nil, m.width, m.height)
		m.overlay = OverlayFind
		return m.find.Init()
	case keymap.ActionOpenFiles:
		return m.openPicker(PickerOpen)
	case keymap.ActionAddFiles:
		return m.openPicker(PickerAdd)
	case keymap.ActionClear:
		m.store.Clear()

	case keymap.ActionPlayPause:
		if c.CurrentIndex() == playback.NoIndex && m.table.Selected() >= 0 {
			c.PlayTrackAt(m.table.Selected())
			return nil
		}
		c.Toggle()
	case keymap.ActionStop:
		c.Stop()
	case keymap.ActionNextTrack:
		c.Next()
	case keymap.ActionPrevTrack:
		c.Previous()
	case keymap.ActionSeekForward:
		c.SeekBy(m.seekStep)
	case keymap.ActionSeekBack:
		c.SeekBy(-m.seekStep)
	case keymap.ActionToggleMute:
		c.ToggleMute()
	case keymap.ActionVolumeUp:
		c.SetVolume(c.Volume() + VolumeStep)
	case keymap.ActionVolumeDown:
		c.SetVolume(c.Volume() - VolumeStep)
	case keymap.ActionToggleWrap:
		c.SetWrap(!c.Wrap())

	case keymap.ActionMoveUp:
		m.table.MoveUp()
	case keymap.ActionMoveDown:
		m.table.MoveDown()
	case keymap.ActionJumpStart:
		m.table.GotoTop()
	case keymap.ActionJumpEnd:
		m.table.GotoBottom()
	case keymap.ActionSelect:
		if row := m.table.Selected(); row >= 0 {
			c.PlayTrackAt(row)
		}
	case keymap.ActionSortTitle, keymap.ActionSortArtist,
		keymap.ActionSortAlbum, keymap.ActionSortDuration:
		m.table.Sort(sortColumns[act])
	}
	return nil
}

// findAndPlay selects and starts the first track whose title matches.
func (m *Model) findAndPlay(title string) {
	if title == "" {
		return
	}
	row := m.store.FindByTitle(title)
	if row == playlist.NotFound {
		m.message = errmsg.FormatWith(errmsg.OpPlaylistFind, title, errNoMatch)
		log.Printf("%s", m.message)
		return
	}
	m.table.Select(row)
	m.coord.PlayTrackAt(row)
}
