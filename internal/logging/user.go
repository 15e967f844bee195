package logging

import (
	"fmt"
	"os"
)

// Glyph-prefixed user output, one line per connection or session event.
// Written straight to stdout/stderr so it stays readable when the
// structured debug log is switched to JSON.

// UserInfo prints an info line to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success line, e.g. a connected link, to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning line, e.g. an unresolved endpoint, to
// stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

// UserError prints an error line to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}
