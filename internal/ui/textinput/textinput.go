// Package textinput provides a single-line prompt popup built on the bubbles
// text input.
package textinput

import (
	"strings"

	bti "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/waveplay/internal/ui"
	"github.com/llehouerou/waveplay/internal/ui/popup"
	"github.com/llehouerou/waveplay/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

const maxInputWidth = 50

// Model is a text prompt popup.
type Model struct {
	ui.Base
	title   string
	input   bti.Model
	context any
}

// New creates a new text input model.
func New() Model {
	in := bti.New()
	in.Prompt = "> "
	in.CharLimit = 256
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.T().Primary)
	in.TextStyle = styles.T().S().Base
	return Model{input: in}
}

// Start opens the prompt with a title, initial text and a context value
// that is returned with the Result.
func (m *Model) Start(title, initialText string, context any, width, height int) {
	m.title = title
	m.context = context
	m.input.SetValue(initialText)
	m.input.CursorEnd()
	m.input.Focus()
	m.SetSize(width, height)
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(min(width-10, maxInputWidth), 10)
}

// Reset clears the input state.
func (m *Model) Reset() {
	m.title = ""
	m.context = nil
	m.input.Reset()
	m.input.Blur()
}

// Value returns the current text.
func (m *Model) Value() string { return m.input.Value() }

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return bti.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type { //nolint:exhaustive // other keys go to the input
		case tea.KeyEsc:
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}
		case tea.KeyEnter:
			text, ctx := strings.TrimSpace(m.input.Value()), m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Text: text, Context: ctx})
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.Sized() {
		return ""
	}
	t := styles.T()
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(m.title)
	hint := t.S().Subtle.Render("Enter: confirm, Esc: cancel")
	return title + "\n\n" + m.input.View() + "\n\n" + hint
}
