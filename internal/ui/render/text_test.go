package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean ascii unchanged", "Hello World", "Hello World"},
		{"clean unicode unchanged", "Künstler 日本", "Künstler 日本"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "line1\nline2", "line1line2"},
		{"escape dropped", "x\x1b[31my", "x[31my"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"invalid byte dropped", "ab\xffcd", "abcd"},
		{"c1 control dropped", "a\u0085b", "ab"},
		{"delete dropped", "a\x7fb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello w…"},
		{"wide characters", "日本語テキスト", 5, "日本…"},
		{"empty string", "", 10, ""},
		{"sanitized first", "a\nbc", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateStyled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hello world")

	got := TruncateStyled(styled, 6)
	if w := lipgloss.Width(got); w != 6 {
		t.Errorf("width = %d, want 6", w)
	}
	if !strings.Contains(got, "hello") {
		t.Errorf("TruncateStyled lost text: %q", got)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  int
	}{
		{"abc", 6, 6},
		{"日本", 6, 6},
		{"toolong", 3, 7},
	}

	for _, tt := range tests {
		if got := lipgloss.Width(Pad(tt.input, tt.width)); got != tt.want {
			t.Errorf("Pad(%q, %d) width = %d, want %d", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name      string
		left      string
		right     string
		width     int
		wantWidth int
	}{
		{"basic row", "left", "right", 20, 20},
		{"tight fit keeps one space", "left", "right", 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Row(tt.left, tt.right, tt.width)
			if w := lipgloss.Width(got); w != tt.wantWidth {
				t.Errorf("Row width = %d, want %d", w, tt.wantWidth)
			}
			if !strings.HasPrefix(got, tt.left) || !strings.HasSuffix(got, tt.right) {
				t.Errorf("Row(%q, %q) = %q", tt.left, tt.right, got)
			}
		})
	}
}
