// Package ui provides shared UI constants and utilities.
package ui

// Layout constants shared by the screen components.
const (
	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// MinTableHeight is the smallest playlist table, header included.
	MinTableHeight = 3

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5

	// MinWidth is the narrowest terminal the layout is computed for.
	MinWidth = 40
)
