package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/waveplay/internal/mpris"
	"github.com/llehouerou/waveplay/internal/player"
)

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// listenEngine waits for the next engine event. Update re-issues it after
// each event so events are handled one at a time, in order.
func (m *Model) listenEngine() tea.Cmd {
	return waitForChannel(m.engine.Events(), func(e player.Event, ok bool) tea.Msg {
		if !ok {
			return EngineClosedMsg{}
		}
		return EngineEventMsg{Event: e}
	})
}

// Sender is the part of tea.Program used to inject messages.
type Sender interface {
	Send(msg tea.Msg)
}

// Dispatcher returns a function that runs closures inside the program's
// Update loop. It is safe to call from any goroutine.
func Dispatcher(p Sender) mpris.Dispatcher {
	return func(fn func()) {
		p.Send(DispatchMsg{Fn: fn})
	}
}
