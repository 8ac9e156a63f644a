package process

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/kbukum/scribe/errors"
)

// Run executes cmd and waits for it to complete. A non-zero exit is an
// error; the returned Result is still populated so callers can report
// what the command printed. If ctx ends first, the process receives SIGTERM
// and is killed after the grace period.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, errors.MissingField("binary")
	}

	grace := cmd.GracePeriod
	if grace == 0 {
		grace = DefaultGracePeriod
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // running configured helpers is the purpose of this package
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.Stdin = cmd.Stdin
	c.Cancel = func() error {
		return c.Process.Signal(syscall.SIGTERM)
	}
	c.WaitDelay = grace

	start := time.Now()
	err := c.Run()

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if err != nil {
		appErr := errors.New(errors.ErrCodeInternal, fmt.Sprintf("%s failed", cmd.Binary)).
			WithCause(err).
			WithDetail("exit_code", result.ExitCode)
		if ctx.Err() != nil {
			appErr.Message = fmt.Sprintf("%s cancelled", cmd.Binary)
			appErr.Cause = ctx.Err()
		} else if d := result.Diagnostic(); d != "" {
			appErr.Message = fmt.Sprintf("%s failed: %s", cmd.Binary, d)
		}
		return result, appErr
	}
	return result, nil
}
