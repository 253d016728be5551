package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Acquire switches f into raw mode so single key presses reach the keypad.
// The returned release restores the previous mode; callers defer it so the
// terminal is restored on every exit path. Input that is not a terminal is
// read as-is and release does nothing.
func Acquire(f *os.File) (release func() error, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}

	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	released := false
	return func() error {
		if released {
			return nil
		}
		released = true
		if err := term.Restore(fd, prev); err != nil {
			return fmt.Errorf("restore terminal: %w", err)
		}
		return nil
	}, nil
}
