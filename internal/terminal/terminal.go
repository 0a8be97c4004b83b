// Package terminal provides leveled, styled logging to stderr and TTY
// detection for the tfreview binary.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether the given file descriptor is a terminal.
func IsTTY(fd int) bool {
	return term.IsTerminal(fd)
}

// IsWriterTTY reports whether w is an *os.File attached to a terminal.
func IsWriterTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return IsTTY(int(f.Fd()))
}

// ColorAllowed reports whether colored output should be produced for w.
// NO_COLOR (https://no-color.org) always wins.
func ColorAllowed(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsWriterTTY(w)
}
