package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY reports whether stdout is attached to a terminal. Both the TUI
// and colored output are gated on this.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// InitColor disables colored output when asked to, when stdout is not a
// terminal, or when NO_COLOR is set.
func InitColor(noColor bool) {
	if noColor || !IsTTY() || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}
