// Package icons selects the glyphs used for transport state and the
// current-row marker.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play    string
	Pause   string
	Stop    string
	Volume  string
	Muted   string
	Wrap    string
	Current string // marks the playing row in the table
}

var (
	nerdIcons = Icons{
		Play:    "\uf04b",     // nf-fa-play
		Pause:   "\uf04c",     // nf-fa-pause
		Stop:    "\uf04d",     // nf-fa-stop
		Volume:  "\U000f057e", // nf-md-volume_high
		Muted:   "\U000f0581", // nf-md-volume_off
		Wrap:    "\U000f0456", // nf-md-repeat
		Current: "\uf001",     // nf-fa-music
	}

	unicodeIcons = Icons{
		Play:    "▶",
		Pause:   "⏸",
		Stop:    "■",
		Volume:  "🔊",
		Muted:   "🔇",
		Wrap:    "🔁",
		Current: "♪",
	}

	noneIcons = Icons{
		Play:    ">",
		Pause:   "||",
		Stop:    "[]",
		Volume:  "vol",
		Muted:   "mute",
		Wrap:    "[W]",
		Current: "*",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Unknown styles fall back to unicode.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = unicodeIcons
	}
}

func Play() string    { return current.Play }
func Pause() string   { return current.Pause }
func Stop() string    { return current.Stop }
func Wrap() string    { return current.Wrap }
func Current() string { return current.Current }

// Volume returns the volume glyph, or the muted one when muted.
func Volume(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Volume
}
