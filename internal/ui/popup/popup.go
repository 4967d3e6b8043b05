package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/waveplay/internal/ui/styles"
)

// RenderBordered wraps content in a rounded border sized to fit it, no wider
// than maxWidth (0 = screen width), and centers the box on the screen.
func RenderBordered(content string, screenW, screenH, maxWidth int) string {
	width := maxLineWidth(content) + 6 // padding + border
	if maxWidth > 0 {
		width = min(width, maxWidth)
	}
	width = max(min(width, screenW-4), 8)

	height := strings.Count(content, "\n") + 1 + 4
	height = max(min(height, screenH-2), 3)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Width(width-2).
		MaxHeight(height).
		Padding(1, 2).
		Render(content)
	return Center(box, screenW, screenH)
}

// Center places pre-rendered content in the middle of the screen. Lines
// above the box are blank so the result can be passed to Compose.
func Center(content string, screenW, screenH int) string {
	lines := strings.Split(content, "\n")
	boxW := maxLineWidth(content)

	padTop := max((screenH-len(lines))/2, 0)
	padLeft := max((screenW-boxW)/2, 0)

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	left := strings.Repeat(" ", padLeft)
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(left)
		b.WriteString(line)
	}
	return b.String()
}

// Compose overlays popupView on base. On each line, the visible span of the
// overlay (between its leading and trailing spaces) replaces the same columns
// of the base line. Styled text on both sides is preserved.
func Compose(base, popupView string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, over := range strings.Split(popupView, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(over)
		trimmed := strings.TrimRight(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		start := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
		end := ansi.StringWidth(trimmed)

		line := baseLines[i]
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}

		prefix := ansi.Cut(line, 0, start)
		if w := ansi.StringWidth(prefix); w < start {
			// a wide rune straddled the left edge
			prefix += strings.Repeat(" ", start-w)
		}
		result := prefix + ansi.Cut(over, start, end)
		if end < width {
			suffix := ansi.Cut(line, end, width)
			if w := ansi.StringWidth(suffix); w < width-end {
				suffix = strings.Repeat(" ", width-end-w) + suffix
			}
			result += suffix
		}
		baseLines[i] = result
	}
	return strings.Join(baseLines, "\n")
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}
