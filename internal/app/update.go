package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/waveplay/internal/ui/action"
	"github.com/llehouerou/waveplay/internal/ui/helpbindings"
	"github.com/llehouerou/waveplay/internal/ui/textinput"
)

// Update handles messages and returns updated model and commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case EngineEventMsg:
		m.coord.HandleEngineEvent(msg.Event)
		return m, m.listenEngine()

	case EngineClosedMsg:
		return m, nil

	case DispatchMsg:
		if msg.Fn != nil {
			msg.Fn()
		}
		return m, nil

	case action.Msg:
		return m, m.handleAction(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// blink and directory listing messages belong to the open popup
	switch m.overlay {
	case OverlayFind:
		_, cmd := m.find.Update(msg)
		return m, cmd
	case OverlayPicker:
		return m, m.updatePicker(msg)
	case OverlayNone, OverlayHelp:
	}
	return m, nil
}

func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case helpbindings.Close:
		m.overlay = OverlayNone
	case textinput.Result:
		m.overlay = OverlayNone
		m.find.Reset()
		if !a.Canceled {
			m.findAndPlay(a.Text)
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.overlay {
	case OverlayHelp:
		_, cmd := m.help.Update(msg)
		return cmd
	case OverlayFind:
		_, cmd := m.find.Update(msg)
		return cmd
	case OverlayPicker:
		return m.updatePicker(msg)
	case OverlayNone:
	}
	return m.runAction(m.keys.Resolve(msg.String()))
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.table.SetSize(width-2, m.tableHeight())
	m.help.SetSize(width, height)
	m.find.SetSize(width, height)
	if m.overlay == OverlayPicker {
		m.sizePicker()
	}
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}
