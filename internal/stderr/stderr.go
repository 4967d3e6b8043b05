//go:build !windows

// Package stderr captures output that C libraries (ALSA, faad2) write
// directly to file descriptor 2 and hands each line to a sink, so the
// lines end up in the log file instead of on top of the TUI.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"
)

// Sink receives one captured line at a time.
type Sink func(line string)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 into a pipe and forwards each non-empty line to
// sink. It must run before any C library initialization. On error the
// program can continue with the original stderr.
func Start(sink Sink) error {
	mu.Lock()
	defer mu.Unlock()

	if pipeRead != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	done = make(chan struct{})

	go forward(r, sink, done)

	return nil
}

func forward(r io.Reader, sink Sink, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sink(line)
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Used for fatal errors that must stay visible.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()

	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for buffered lines to be
// forwarded.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if pipeRead == nil {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	// closing the write end lets the scanner drain and hit EOF
	pipeWrite.Close()
	<-done
	pipeRead.Close()

	pipeRead, pipeWrite, done = nil, nil, nil
}
