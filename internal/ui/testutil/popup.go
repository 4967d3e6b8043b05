package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/waveplay/internal/ui/popup"
)

// PopupHarness drives a popup.Popup in tests and records the commands it
// returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness initializes p and captures its init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	if cmd := p.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Popup returns the underlying popup for type assertion when needed.
func (h *PopupHarness) Popup() popup.Popup { return h.popup }

// SetSize sets the popup dimensions.
func (h *PopupHarness) SetSize(width, height int) { h.popup.SetSize(width, height) }

// View returns the popup's rendered content.
func (h *PopupHarness) View() string { return h.popup.View() }

// SendMsg sends any message to the popup and returns the resulting command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// Type sends each rune of s as a separate key press.
func (h *PopupHarness) Type(s string) {
	for _, r := range s {
		h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendKey sends a special key (enter, escape, backspace).
func (h *PopupHarness) SendKey(k tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: k})
}

// Commands returns all commands collected since creation or last ClearCommands.
func (h *PopupHarness) Commands() []tea.Cmd { return h.cmds }

// LastCommand returns the most recent command, or nil if none.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands clears the collected commands.
func (h *PopupHarness) ClearCommands() { h.cmds = nil }

// ViewContains reports whether the unstyled view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return ContainsLine(StripANSI(h.View()), substr)
}

// ExecuteCmd runs a command and returns the resulting message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
