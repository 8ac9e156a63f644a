// Command scribe transcribes recorded audio with a remote speech-to-text
// provider and copies the result to the clipboard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/scribe/clipboard"
	"github.com/kbukum/scribe/version"
)

const usageText = `Usage: scribe <command> [flags]

Commands:
  transcribe   Transcribe audio files (one file, or several pre-split chunks)
  config       Show or change saved settings
  version      Print build information

Run 'scribe <command> --help' for command flags.
`

// app holds the process boundaries so commands can be exercised in tests.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	clipboard clipboard.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{stdout: os.Stdout, stderr: os.Stderr, clipboard: clipboard.New()}
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usageText)
		return 2
	}

	switch args[0] {
	case "transcribe":
		return a.runTranscribe(ctx, args[1:])
	case "config":
		return a.runConfig(args[1:])
	case "version", "--version":
		fmt.Fprintln(a.stdout, version.Get())
		return 0
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usageText)
		return 0
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n\n%s", args[0], usageText)
		return 2
	}
}

func (a *app) fail(format string, args ...any) int {
	fmt.Fprintf(a.stderr, "Error: "+format+"\n", args...)
	return 1
}
