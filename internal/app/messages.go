package app

import "github.com/llehouerou/waveplay/internal/player"

// EngineEventMsg carries one engine event into Update.
type EngineEventMsg struct {
	Event player.Event
}

// EngineClosedMsg is sent once the engine event channel is closed.
type EngineClosedMsg struct{}

// DispatchMsg runs Fn inside Update, on the goroutine that owns the
// coordinator.
type DispatchMsg struct {
	Fn func()
}
