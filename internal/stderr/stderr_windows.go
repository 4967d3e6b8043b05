//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio backends don't write to fd 2 the way ALSA does.
package stderr

import "os"

// Sink receives one captured line at a time.
type Sink func(line string)

// Start is a no-op on Windows.
func Start(Sink) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop is a no-op on Windows.
func Stop() {}
