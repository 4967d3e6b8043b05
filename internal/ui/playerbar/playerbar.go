// Package playerbar renders the transport area under the playlist: the
// current track, a position bar, the volume and the status line.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/waveplay/internal/icons"
	"github.com/llehouerou/waveplay/internal/playback"
	"github.com/llehouerou/waveplay/internal/playlist"
	"github.com/llehouerou/waveplay/internal/ui/render"
	"github.com/llehouerou/waveplay/internal/ui/styles"
)

// Height is the rendered height including the border.
const Height = 5

// State holds everything needed to render the player bar.
type State struct {
	Status   playback.State
	Index    int // current row, playback.NoIndex when none
	Total    int
	Title    string
	Artist   string
	Album    string
	Position time.Duration
	Duration time.Duration
	Volume   int
	Muted    bool
	Wrap     bool
	Message  string // last error, replaces the status line while set
}

// NewState snapshots the coordinator.
func NewState(c *playback.Coordinator) State {
	s := State{
		Status:   c.PlaybackState(),
		Index:    c.CurrentIndex(),
		Total:    c.PlaylistSize(),
		Position: c.Position(),
		Duration: c.Duration(),
		Volume:   c.Volume(),
		Muted:    c.Muted(),
		Wrap:     c.Wrap(),
	}
	if t, ok := c.CurrentTrack(); ok {
		s.Title = t.Title
		s.Artist = t.Artist
		s.Album = t.Album
		if s.Duration == 0 {
			s.Duration = t.Duration
		}
	}
	return s
}

// StatusText renders the status line, e.g. "Status: Playing - Track 2/3".
func StatusText(s State) string {
	text := "Status: " + s.Status.String()
	if s.Index >= 0 && s.Total > 0 {
		text += fmt.Sprintf(" - Track %d/%d", s.Index+1, s.Total)
	}
	return text
}

// TimeText renders "mm:ss / mm:ss".
func TimeText(s State) string {
	return playlist.FormatDuration(s.Position) + " / " + playlist.FormatDuration(s.Duration)
}

// VolumeText renders the volume percent with its icon.
func VolumeText(s State) string {
	return fmt.Sprintf("%s %3d%%", icons.Volume(s.Muted), s.Volume)
}

// Model renders the bar. The zero value is not usable; call New.
type Model struct {
	bar progress.Model
}

// New creates a player bar.
func New() Model {
	t := styles.T()
	return Model{
		bar: progress.New(
			progress.WithGradient(string(t.Primary), string(t.Secondary)),
			progress.WithoutPercentage(),
		),
	}
}

// View renders s in width columns.
func (m Model) View(s State, width int) string {
	st := styles.T().S()
	inner := max(width-4, 10) // border and padding

	// Line 1: ▶ Title · Artist · Album            [W]  🔊  50%
	right := st.Muted.Render(VolumeText(s))
	if s.Wrap {
		right = st.Muted.Render(icons.Wrap()) + "  " + right
	}
	left := statusIcon(s.Status) + " " + trackLine(s)
	left = render.TruncateStyled(left, max(inner-lipgloss.Width(right)-1, 1))
	line1 := render.Row(left, right, inner)

	// Line 2: ━━━━━━━━━━━━──────────  01:23 / 04:56
	timeText := TimeText(s)
	m.bar.Width = max(inner-lipgloss.Width(timeText)-2, 1)
	line2 := m.bar.ViewAs(ratio(s.Position, s.Duration)) + "  " + st.Muted.Render(timeText)

	// Line 3: status or the last error
	line3 := st.Subtle.Render(StatusText(s))
	if s.Message != "" {
		line3 = st.Error.Render(render.Truncate(s.Message, inner))
	}

	content := strings.Join([]string{line1, line2, line3}, "\n")
	return st.Panel.Padding(0, 1).Width(max(width-2, 0)).Render(content)
}

func trackLine(s State) string {
	st := styles.T().S()
	if s.Index < 0 {
		return st.Subtle.Render("No track")
	}

	title := st.Title.Render(render.Sanitize(s.Title))
	var info []string
	if s.Artist != "" {
		info = append(info, render.Sanitize(s.Artist))
	}
	if s.Album != "" {
		info = append(info, render.Sanitize(s.Album))
	}
	if len(info) == 0 {
		return title
	}
	return title + st.Muted.Render(" · "+strings.Join(info, " · "))
}

func statusIcon(state playback.State) string {
	st := styles.T().S()
	switch state {
	case playback.StatePlaying:
		return st.Success.Render(icons.Play())
	case playback.StatePaused:
		return st.Warning.Render(icons.Pause())
	case playback.StateStopped:
		return st.Subtle.Render(icons.Stop())
	}
	return st.Subtle.Render(icons.Stop())
}

func ratio(pos, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return min(max(float64(pos)/float64(dur), 0), 1)
}
