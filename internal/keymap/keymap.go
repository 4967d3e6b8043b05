package keymap

// Binding maps keys to an action, with a description for the help popup.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "playlist"
}

// Bindings is the single source of truth for all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionFind, []string{"/"}, "Find track by title", "global"},
	{ActionOpenFiles, []string{"o"}, "Open files (replace playlist)", "global"},
	{ActionAddFiles, []string{"a"}, "Add files", "global"},
	{ActionClear, []string{"c"}, "Clear playlist", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekBack, []string{"left"}, "Seek backward", "playback"},
	{ActionSeekForward, []string{"right"}, "Seek forward", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute/unmute", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleWrap, []string{"w"}, "Toggle wrap-around", "playback"},

	// Playlist
	{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	{ActionJumpStart, []string{"g", "home"}, "First row", "playlist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last row", "playlist"},
	{ActionSelect, []string{"enter"}, "Play selected track", "playlist"},
	{ActionSortTitle, []string{"1"}, "Sort by title", "playlist"},
	{ActionSortArtist, []string{"2"}, "Sort by artist", "playlist"},
	{ActionSortAlbum, []string{"3"}, "Sort by album", "playlist"},
	{ActionSortDuration, []string{"4"}, "Sort by duration", "playlist"},
}

// Contexts lists binding contexts in help display order.
var Contexts = []string{"global", "playback", "playlist"}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
