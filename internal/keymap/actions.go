// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"
	ActionFind Action = "find" // / - find track by title

	// Playlist building
	ActionOpenFiles Action = "open_files" // o - replace playlist
	ActionAddFiles  Action = "add_files"  // a - append to playlist
	ActionClear     Action = "clear"      // c - clear playlist

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionNextTrack   Action = "next_track"
	ActionPrevTrack   Action = "prev_track"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionToggleMute  Action = "toggle_mute"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionToggleWrap  Action = "toggle_wrap"

	// Playlist table actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionSelect    Action = "select" // enter - play the selected row

	// Sorting (repeat to flip order)
	ActionSortTitle    Action = "sort_title"
	ActionSortArtist   Action = "sort_artist"
	ActionSortAlbum    Action = "sort_album"
	ActionSortDuration Action = "sort_duration"
)
