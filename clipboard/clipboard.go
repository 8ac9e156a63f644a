// Package clipboard delivers finished transcripts to the system clipboard.
package clipboard

import (
	"context"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/process"
)

// DefaultFlatpakInfo exists only inside a Flatpak sandbox.
const DefaultFlatpakInfo = "/.flatpak-info"

// Writer receives transcript text.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// Clipboard writes to the system clipboard. Inside a Flatpak sandbox the
// host's wl-copy is invoked through flatpak-spawn, since the sandbox has no
// direct access to the compositor's clipboard.
type Clipboard struct {
	flatpakInfo string
	hostCommand process.Command
	system      func(string) error
	log         *logger.Logger
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithFlatpakInfo overrides the file whose presence marks a Flatpak sandbox.
func WithFlatpakInfo(path string) Option {
	return func(c *Clipboard) { c.flatpakInfo = path }
}

// WithHostCommand overrides the command used inside a sandbox. The text is
// written to its stdin.
func WithHostCommand(name string, args ...string) Option {
	return func(c *Clipboard) { c.hostCommand = process.Command{Binary: name, Args: args} }
}

// WithSystemWriter overrides the native clipboard call.
func WithSystemWriter(fn func(string) error) Option {
	return func(c *Clipboard) { c.system = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Clipboard) { c.log = l }
}

// New returns a Clipboard.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		flatpakInfo: DefaultFlatpakInfo,
		hostCommand: process.Command{Binary: "flatpak-spawn", Args: []string{"--host", "wl-copy"}},
		system:      clipboard.WriteAll,
		log:         logger.WithComponent("clipboard"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InSandbox reports whether the process runs inside Flatpak.
func (c *Clipboard) InSandbox() bool {
	_, err := os.Stat(c.flatpakInfo)
	return err == nil
}

// WriteText copies text to the clipboard.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if c.InSandbox() {
		c.log.Debug("copying through host command", logger.Fields("command", c.hostCommand.String()))
		return c.viaHost(ctx, text)
	}
	if err := c.system(text); err != nil {
		return errors.New(errors.ErrCodeInternal, "failed to copy text to clipboard").WithCause(err)
	}
	return nil
}

func (c *Clipboard) viaHost(ctx context.Context, text string) error {
	cmd := c.hostCommand
	cmd.Stdin = strings.NewReader(text)
	_, err := process.Run(ctx, cmd)
	return err
}
