package player

import (
	"math"

	"github.com/gopxl/beep/v2/effects"
)

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale where Volume is in "decibels" with base 2.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent)
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

func clampLevel(level float64) float64 {
	return min(max(level, 0), 1)
}

// applyVolume copies the level and mute flag onto a volume effect.
// Callers hold the speaker lock when the effect is live.
func applyVolume(v *effects.Volume, level float64, muted bool) {
	v.Volume = levelToVolume(level)
	v.Silent = muted || level <= 0
}
