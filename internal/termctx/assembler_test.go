package termctx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skyresth/outexplain/internal/capture"
	"github.com/skyresth/outexplain/internal/config"
	"github.com/skyresth/outexplain/internal/types"
)

// fakeCapturer returns canned pane text or a canned error.
type fakeCapturer struct {
	pane     string
	err      error
	verbatim bool
}

func (f *fakeCapturer) Name() string { return "fake" }

func (f *fakeCapturer) Capture(ctx context.Context) (string, error) {
	return f.pane, f.err
}

func (f *fakeCapturer) Verbatim() bool { return f.verbatim }

func testLimits() config.Limits {
	return config.Limits{MaxCommands: 3, MaxChars: 10000, MaxHistory: 5000}
}

func writeHistoryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write history file: %v", err)
	}
	return path
}

func TestAssembleFromLivePane(t *testing.T) {
	pane := strings.Join([]string{
		"user@host:~$ make build",
		"compiling...",
		"user@host:~$ ./app",
		"panic: nil dereference",
		"user@host:~$ outexplain",
	}, "\n")

	a := &Assembler{
		Capturer: &fakeCapturer{pane: pane},
		Shell:    types.Shell{Name: "bash", Prompt: "user@host:~$"},
		Limits:   testLimits(),
	}

	res, err := a.Assemble(context.Background(), Options{PreferLive: true})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}

	if res.Context.LastCommand == nil {
		t.Fatal("expected a last command")
	}
	if res.Context.LastCommand.Command != "./app" {
		t.Errorf("last command = %q, want \"./app\"", res.Context.LastCommand.Command)
	}
	if !strings.Contains(res.Context.LastCommand.Output, "panic: nil dereference") {
		t.Errorf("last command output = %q", res.Context.LastCommand.Output)
	}
	if len(res.Context.PreviousCommands) != 1 {
		t.Fatalf("expected 1 previous command, got %d", len(res.Context.PreviousCommands))
	}
	if res.Context.PreviousCommands[0].Command != "make build" {
		t.Errorf("previous command = %q", res.Context.PreviousCommands[0].Command)
	}
}

// Piped input is embedded whole: the final line is usually the error being
// asked about and must never be dropped as an invocation line.
func TestAssembleFromPipedInput(t *testing.T) {
	piped := "error: file not found\nexit status 1\n"

	a := &Assembler{
		Capturer: &capture.StdinCapturer{Reader: strings.NewReader(piped)},
		Shell:    types.Shell{Name: "bash", Prompt: "user@host:~$"},
		Limits:   testLimits(),
	}

	res, err := a.Assemble(context.Background(), Options{PreferLive: true})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if res.Context.LastCommand == nil {
		t.Fatal("expected a last command")
	}
	if got := res.Context.LastCommand.Output; got != strings.TrimSpace(piped) {
		t.Errorf("piped input must survive verbatim, got %q", got)
	}
	if !strings.HasSuffix(res.Context.LastCommand.Output, "exit status 1") {
		t.Errorf("final line of piped input was dropped: %q", res.Context.LastCommand.Output)
	}
	if len(res.Context.PreviousCommands) != 0 {
		t.Errorf("piped input is a single block, got %d previous commands", len(res.Context.PreviousCommands))
	}
}

func TestAssembleFallsBackToHistory(t *testing.T) {
	path := writeHistoryFile(t, "cd /srv\ngit pull\nsystemctl restart app\n")

	a := &Assembler{
		Capturer: &fakeCapturer{err: capture.ErrUnavailable},
		Shell:    types.Shell{Name: "bash"},
		Source:   types.HistoryLogSource{Dialect: types.DialectPosix, Path: path},
		Limits:   testLimits(),
	}

	res, err := a.Assemble(context.Background(), Options{PreferLive: true})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	foundFallback := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "falling back to shell history") {
			foundFallback = true
		}
	}
	if !foundFallback {
		t.Errorf("expected a fallback warning, got %v", res.Warnings)
	}

	if res.Context.LastCommand == nil || res.Context.LastCommand.Command != "systemctl restart app" {
		t.Fatalf("last command = %+v, want the newest history entry", res.Context.LastCommand)
	}
	if len(res.Context.PreviousCommands) != 2 {
		t.Fatalf("expected 2 previous commands, got %d", len(res.Context.PreviousCommands))
	}
	if res.Context.PreviousCommands[0].Command != "cd /srv" ||
		res.Context.PreviousCommands[1].Command != "git pull" {
		t.Errorf("previous commands out of order: %+v", res.Context.PreviousCommands)
	}
}

func TestAssembleHistoryOnlyMode(t *testing.T) {
	path := writeHistoryFile(t, "one\ntwo\nthree\nfour\nfive\n")

	a := &Assembler{
		// A pane capturer that would succeed must be ignored in
		// history-only mode.
		Capturer: &fakeCapturer{pane: "user@host:~$ echo live\nlive"},
		Shell:    types.Shell{Name: "zsh", Prompt: "user@host:~$"},
		Source:   types.HistoryLogSource{Dialect: types.DialectPosix, Path: path},
		Limits:   testLimits(),
	}

	res, err := a.Assemble(context.Background(), Options{PreferLive: false, HistoryCount: 2})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if res.Context.LastCommand.Command != "five" {
		t.Errorf("last command = %q, want \"five\"", res.Context.LastCommand.Command)
	}
	if len(res.Context.PreviousCommands) != 1 || res.Context.PreviousCommands[0].Command != "four" {
		t.Errorf("expected only \"four\" as previous, got %+v", res.Context.PreviousCommands)
	}
}

func TestAssemblePreviousCommandsBound(t *testing.T) {
	path := writeHistoryFile(t, "a\nb\nc\nd\ne\nf\n")

	a := &Assembler{
		Shell:  types.Shell{Name: "bash"},
		Source: types.HistoryLogSource{Dialect: types.DialectPosix, Path: path},
		Limits: testLimits(),
	}

	t.Run("configured limit", func(t *testing.T) {
		res, err := a.Assemble(context.Background(), Options{})
		if err != nil {
			t.Fatalf("Assemble returned error: %v", err)
		}
		if len(res.Context.PreviousCommands) != 3 {
			t.Errorf("expected MaxCommands=3 previous commands, got %d", len(res.Context.PreviousCommands))
		}
	})

	t.Run("flag override", func(t *testing.T) {
		res, err := a.Assemble(context.Background(), Options{PreviousCommands: 5})
		if err != nil {
			t.Fatalf("Assemble returned error: %v", err)
		}
		if len(res.Context.PreviousCommands) != 5 {
			t.Errorf("expected 5 previous commands, got %d", len(res.Context.PreviousCommands))
		}
	})
}

func TestAssembleNoContext(t *testing.T) {
	a := &Assembler{
		Shell:  types.Shell{Name: "bash"},
		Source: types.HistoryLogSource{Dialect: types.DialectPosix, Path: filepath.Join(t.TempDir(), "nope")},
		Limits: testLimits(),
	}

	t.Run("without user messages", func(t *testing.T) {
		res, err := a.Assemble(context.Background(), Options{})
		if !errors.Is(err, ErrNoContext) {
			t.Fatalf("expected ErrNoContext, got %v", err)
		}
		if len(res.Warnings) == 0 {
			t.Error("expected a warning about the missing history file")
		}
	})

	t.Run("user messages survive an empty context", func(t *testing.T) {
		// The error still signals empty history; the caller decides whether
		// a standalone question makes it non-fatal.
		res, err := a.Assemble(context.Background(), Options{UserMessages: []string{"what is a symlink?"}})
		if !errors.Is(err, ErrNoContext) {
			t.Fatalf("expected ErrNoContext, got %v", err)
		}
		if len(res.Context.UserMessages) != 1 || res.Context.UserMessages[0] != "what is a symlink?" {
			t.Errorf("user messages must pass through verbatim, got %v", res.Context.UserMessages)
		}
	})
}

func TestAssembleUserMessagesNeverTruncated(t *testing.T) {
	long := strings.Repeat("z", 50000)
	a := &Assembler{
		Shell:  types.Shell{Name: "bash"},
		Source: types.HistoryLogSource{Dialect: types.DialectPosix, Path: writeHistoryFile(t, "ls\n")},
		Limits: config.Limits{MaxCommands: 3, MaxChars: 100, MaxHistory: 5000},
	}

	res, err := a.Assemble(context.Background(), Options{UserMessages: []string{long}})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if res.Context.UserMessages[0] != long {
		t.Error("user message was altered by the character budget")
	}
}
