package ui

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether the given file descriptor refers to a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
// Buffers, pipes wrapped in other types and nil are not.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && f != nil && IsTTY(f.Fd())
}
