// Package render provides text helpers for fitting tag text into cells.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters (except tab) and invalid UTF-8 bytes,
// and turns non-breaking spaces into plain spaces. Tag metadata is often
// dirty enough to break terminal rendering otherwise.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += max(size, 1)
	}
	return b.String()
}

// needsSanitize is a byte scan that lets clean strings skip the rebuild.
func needsSanitize(s string) bool {
	for i := range len(s) {
		b := s[i]
		if (b < 0x20 && b != '\t') || b == 0x7f {
			return true
		}
		if b == 0xc2 && i+1 < len(s) && (s[i+1] == 0xa0 || s[i+1] >= 0x80 && s[i+1] <= 0x9f) {
			return true
		}
	}
	return !utf8.ValidString(s)
}

// Truncate shortens plain text to maxWidth columns with a "…" tail.
// Wide characters (CJK, emoji) count as two columns.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// TruncateStyled is Truncate for strings that already carry ANSI styling.
func TruncateStyled(s string, maxWidth int) string {
	return ansi.Truncate(s, maxWidth, "…")
}

// Pad fills a string with spaces to reach width columns.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Row joins left and right with enough spaces to fill width. The gap is
// at least one space, so the result can exceed width when both sides are
// too wide.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
