// Package helpbindings provides a scrollable popup listing the key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/waveplay/internal/keymap"
	"github.com/llehouerou/waveplay/internal/ui"
	"github.com/llehouerou/waveplay/internal/ui/popup"
	"github.com/llehouerou/waveplay/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

var contextLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"playlist": "Playlist",
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	lines        []string
	scrollOffset int
}

// New creates a help popup listing every binding context.
func New() Model {
	m := Model{}
	m.SetContexts(keymap.Contexts)
	return m
}

// SetContexts limits the listing to the given contexts. Sections keep the
// keymap.Contexts order.
func (m *Model) SetContexts(contexts []string) {
	m.lines = buildLines(contexts)
	m.scrollOffset = 0
}

func buildLines(contexts []string) []string {
	st := styles.T().S()
	header := lipgloss.NewStyle().Foreground(styles.T().Warning).Bold(true)

	var sections [][]keymap.Binding
	keyWidth := 0
	for _, ctx := range keymap.Contexts {
		if !slices.Contains(contexts, ctx) {
			continue
		}
		bindings := keymap.ByContext(ctx)
		for _, b := range bindings {
			keyWidth = max(keyWidth, lipgloss.Width(keymap.Display(b.Keys)))
		}
		sections = append(sections, bindings)
	}

	var lines []string
	for _, bindings := range sections {
		if len(bindings) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		label := contextLabels[bindings[0].Context]
		lines = append(lines,
			header.Render(label),
			st.Subtle.Render(strings.Repeat("─", keyWidth+16)),
		)
		for _, b := range bindings {
			keys := keymap.Display(b.Keys)
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(keys))
			lines = append(lines, st.Key.Render(keys)+pad+"  "+st.Base.Render(b.Description))
		}
	}
	return lines
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
	case "k", "up":
		m.scrollOffset = max(m.scrollOffset-1, 0)
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.Sized() {
		return ""
	}

	width := 0
	for _, line := range m.lines {
		width = max(width, lipgloss.Width(line))
	}

	end := min(m.scrollOffset+m.visibleHeight(), len(m.lines))
	visible := make([]string, 0, end-m.scrollOffset)
	for _, line := range m.lines[m.scrollOffset:end] {
		visible = append(visible, line+strings.Repeat(" ", width-lipgloss.Width(line)))
	}

	footer := "?/esc close"
	if m.maxScroll() > 0 {
		footer = "j/k scroll · " + footer
	}

	st := styles.T().S()
	return st.Title.Render("Help") + "\n\n" +
		strings.Join(visible, "\n") + "\n\n" +
		st.Subtle.Render(footer)
}

func (m Model) visibleHeight() int {
	// title, footer and the bordered frame
	return max(m.Height()-10, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}
