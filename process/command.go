// Package process runs short-lived helper commands, such as the host
// clipboard bridge used inside sandboxes.
package process

import (
	"io"
	"time"
)

// DefaultGracePeriod is how long a cancelled command has to exit after
// SIGTERM before it is killed.
const DefaultGracePeriod = 2 * time.Second

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// GracePeriod defaults to DefaultGracePeriod.
	GracePeriod time.Duration
}

// String renders the command line for logs.
func (c Command) String() string {
	s := c.Binary
	for _, a := range c.Args {
		s += " " + a
	}
	return s
}
