package app

import "github.com/llehouerou/waveplay/internal/state"

// saveSettings queues a debounced save of volume, mute and the picker
// directory.
func (m *Model) saveSettings() {
	if m.state == nil {
		return
	}
	m.state.SaveSettings(state.Settings{
		Volume:  m.coord.Volume(),
		Muted:   m.coord.Muted(),
		LastDir: m.lastDir,
	})
}
