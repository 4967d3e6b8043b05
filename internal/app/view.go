package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/waveplay/internal/keymap"
	"github.com/llehouerou/waveplay/internal/ui"
	"github.com/llehouerou/waveplay/internal/ui/playerbar"
	"github.com/llehouerou/waveplay/internal/ui/popup"
	"github.com/llehouerou/waveplay/internal/ui/render"
	"github.com/llehouerou/waveplay/internal/ui/styles"
)

const headerHeight = 1

func (m *Model) tableHeight() int {
	return max(m.height-headerHeight-playerbar.Height-ui.BorderHeight, ui.MinTableHeight)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	st := styles.T().S()
	table := st.Panel.Width(m.width - 2).Render(m.tableView())

	bar := playerbar.NewState(m.coord)
	bar.Message = m.message

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		table,
		m.bar.View(bar, m.width),
	)

	switch m.overlay {
	case OverlayHelp:
		return popup.Compose(base, popup.RenderBordered(m.help.View(), m.width, m.height, 0), m.width)
	case OverlayFind:
		return popup.Compose(base, popup.RenderBordered(m.find.View(), m.width, m.height, 70), m.width)
	case OverlayPicker:
		return popup.Compose(base, popup.RenderBordered(m.pickerView(), m.width, m.height, 90), m.width)
	case OverlayNone:
	}
	return base
}

func (m *Model) headerView() string {
	t := styles.T()
	title := styles.Gradient("waveplay", t.Primary, t.Secondary, true)
	hint := t.S().Subtle.Render(keymap.Display(m.keys.KeysFor(keymap.ActionHelp)) + " help")
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(hint)-2, 1)
	return " " + title + strings.Repeat(" ", gap) + hint
}

func (m *Model) tableView() string {
	if m.store.RowCount() > 0 {
		return m.table.View()
	}
	// keep the panel height stable while empty
	st := styles.T().S()
	open := keymap.Display(m.keys.KeysFor(keymap.ActionOpenFiles))
	add := keymap.Display(m.keys.KeysFor(keymap.ActionAddFiles))
	msg := st.Muted.Render("Playlist is empty. Press " + open + " to open a file or " + add + " to add one.")
	return lipgloss.Place(m.width-2, m.tableHeight(), lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) pickerView() string {
	t := styles.T()
	title := "Open files"
	if m.pickerMode == PickerAdd {
		title = "Add files"
	}
	dir := t.S().Subtle.Render(m.picker.CurrentDirectory)
	hint := "enter mark · tab confirm · esc cancel"
	if n := len(m.picked); n > 0 {
		names := make([]string, n)
		for i, p := range m.picked {
			names[i] = filepath.Base(p)
		}
		hint = fmt.Sprintf("%d marked: %s · %s", n, render.Truncate(strings.Join(names, ", "), 32), hint)
	}
	return t.S().Title.Render(title) + "  " + dir + "\n\n" + m.picker.View() + "\n" + t.S().Subtle.Render(hint)
}
