package process

import (
	"strings"
	"time"
)

// Result holds the output and status of a completed subprocess.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int // -1 if the process was killed or never started
	Duration time.Duration
}

// Diagnostic returns trimmed stderr, falling back to stdout.
func (r *Result) Diagnostic() string {
	if r == nil {
		return ""
	}
	if s := strings.TrimSpace(string(r.Stderr)); s != "" {
		return s
	}
	return strings.TrimSpace(string(r.Stdout))
}
