package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text with a horizontal color gradient blended in HCL
// space, one color per grapheme cluster.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	style := lipgloss.NewStyle().Bold(bold)
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return style.Foreground(from).Render(text)
	}

	hexes := Blend(len(clusters), from, to)

	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(style.Foreground(lipgloss.Color(hexes[i])).Render(cluster))
	}
	return b.String()
}

// Blend returns n hex colors from from to to, inclusive.
// Non-hex colors (ANSI indexes) blend as neutral gray.
func Blend(n int, from, to lipgloss.Color) []string {
	if n <= 0 {
		return nil
	}
	c1 := parseHex(from)
	if n == 1 {
		return []string{c1.Hex()}
	}
	c2 := parseHex(to)

	out := make([]string, n)
	for i := range n {
		out[i] = c1.BlendHcl(c2, float64(i)/float64(n-1)).Clamped().Hex()
	}
	return out
}

func parseHex(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}
