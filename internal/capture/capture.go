// Package capture reads the live contents of a terminal-multiplexer pane.
//
// The assembler never talks to a specific multiplexer binary: it sees only
// the Capturer interface, so tests can substitute canned pane text and new
// multiplexers slot in without touching assembly.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// ErrUnavailable signals that no multiplexer pane can be read. It is an
// expected branch, not a failure: callers fall back to persisted history.
var ErrUnavailable = errors.New("no multiplexer pane available")

// captureTimeout bounds the external multiplexer call. A wedged tmux
// server is treated the same as an absent one.
const captureTimeout = 2 * time.Second

// Capturer is a read-only snapshot source for the active pane.
type Capturer interface {
	// Name identifies the source for logs and warnings.
	Name() string

	// Capture returns the pane text, or ErrUnavailable when the source
	// cannot serve a snapshot. It never blocks past a fixed timeout.
	Capture(ctx context.Context) (string, error)

	// Verbatim reports whether the captured text is already exact
	// context: no prompt lines to segment and no trailing invocation
	// line to drop. True for piped stdin, false for pane snapshots,
	// which end with the prompt line that launched this tool.
	Verbatim() bool
}

// Detect picks the capturer for the current environment: tmux when $TMUX
// is set, screen when $STY is set, nil when neither is. scrollback is the
// number of history lines to request from the pane.
func Detect(scrollback int) Capturer {
	if os.Getenv("TMUX") != "" {
		return &TmuxCapturer{Scrollback: scrollback}
	}
	if os.Getenv("STY") != "" {
		return &ScreenCapturer{}
	}
	return nil
}

// TmuxCapturer snapshots the active tmux pane including scrollback.
type TmuxCapturer struct {
	// Scrollback is how many history lines above the visible pane to
	// include. Zero captures only the visible region.
	Scrollback int
}

func (c *TmuxCapturer) Name() string { return "tmux" }

func (c *TmuxCapturer) Verbatim() bool { return false }

func (c *TmuxCapturer) Capture(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	// -p prints to stdout, -J joins wrapped lines back together.
	args := []string{"capture-pane", "-pJ"}
	if c.Scrollback > 0 {
		args = append(args, "-S", fmt.Sprintf("-%d", c.Scrollback))
	}

	out, err := exec.CommandContext(ctx, "tmux", args...).Output()
	if err != nil {
		return "", ErrUnavailable
	}
	return normalize(out), nil
}

// ScreenCapturer snapshots the active GNU screen window via hardcopy,
// which only writes to a file.
type ScreenCapturer struct{}

func (c *ScreenCapturer) Name() string { return "screen" }

func (c *ScreenCapturer) Verbatim() bool { return false }

func (c *ScreenCapturer) Capture(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	tmp, err := os.CreateTemp("", "outexplain-hardcopy-*")
	if err != nil {
		return "", ErrUnavailable
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	// -h includes scrollback history in the hardcopy.
	if err := exec.CommandContext(ctx, "screen", "-X", "hardcopy", "-h", tmpPath).Run(); err != nil {
		return "", ErrUnavailable
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", ErrUnavailable
	}
	return normalize(data), nil
}

// StdinCapturer treats piped standard input as pane text, covering
// `some-command 2>&1 | outexplain` outside any multiplexer.
type StdinCapturer struct {
	Reader io.Reader
}

func (c *StdinCapturer) Name() string { return "stdin" }

func (c *StdinCapturer) Verbatim() bool { return true }

func (c *StdinCapturer) Capture(ctx context.Context) (string, error) {
	if c.Reader == nil {
		return "", ErrUnavailable
	}
	data, err := io.ReadAll(c.Reader)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return "", ErrUnavailable
	}
	return normalize(data), nil
}

// normalize folds CRLF to LF so downstream segmentation sees one line
// ending regardless of platform.
func normalize(out []byte) string {
	return string(bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n")))
}
