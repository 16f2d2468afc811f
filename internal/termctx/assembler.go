// Package termctx assembles terminal history into the context structure
// handed to the request layer. It composes pane capture, history parsing
// and the truncation policy; it is the only place that decides which
// source wins and whether an empty result is fatal.
package termctx

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/skyresth/outexplain/internal/capture"
	"github.com/skyresth/outexplain/internal/config"
	"github.com/skyresth/outexplain/internal/histfile"
	"github.com/skyresth/outexplain/internal/types"
)

// ErrNoContext reports that neither live capture nor any history source
// yielded data. The caller may still proceed when the user supplied an
// explicit question.
var ErrNoContext = errors.New("no terminal context found")

// Assembler builds a Context from the configured sources. All fields are
// set once at construction; Assemble holds no state across calls.
type Assembler struct {
	// Capturer is the live pane source, nil when no multiplexer was
	// detected.
	Capturer capture.Capturer
	// Shell is the detected user shell, used for prompt-anchored pane
	// segmentation.
	Shell types.Shell
	// Source is the resolved history log for the shell's dialect.
	Source types.HistoryLogSource
	// Limits bound every text field and sequence in the result.
	Limits config.Limits

	Logger *zap.Logger
}

// Options carries the per-invocation parameters parsed by the CLI layer.
type Options struct {
	// UserMessages are attached to the context verbatim, never truncated.
	UserMessages []string
	// PreferLive enables the pane-capture path. When false (history-only
	// mode, the -n flag) assembly goes straight to the history parser.
	PreferLive bool
	// PreviousCommands overrides Limits.MaxCommands for this run (the -x
	// flag). Zero means use the configured limit.
	PreviousCommands int
	// HistoryCount overrides how many stored interactions are read in
	// history-only mode (the -n flag). Zero means Limits.MaxHistory.
	HistoryCount int
}

// Result is an assembled context plus the recoverable warnings gathered
// along the way. Warnings are reported to the user separately and never
// mixed into the context text itself.
type Result struct {
	Context  types.Context
	Warnings []string
}

// Assemble runs the source chain: live pane capture first (when
// preferred), then the dialect history parser, then truncation. It returns
// ErrNoContext alongside the partial result when every source came up
// empty; the caller decides whether that is terminal.
func (a *Assembler) Assemble(ctx context.Context, opts Options) (*Result, error) {
	logger := a.logger()
	prevCap := a.Limits.MaxCommands
	if opts.PreviousCommands > 0 {
		prevCap = opts.PreviousCommands
	}

	res := &Result{}
	var commands []types.CapturedCommand

	if opts.PreferLive && a.Capturer != nil {
		commands = a.captureLive(ctx, prevCap, res, logger)
	}

	if len(commands) == 0 {
		count := a.Limits.MaxHistory
		if opts.HistoryCount > 0 {
			count = opts.HistoryCount
		}
		parsed, warnings := histfile.Parse(a.Source, count)
		res.Warnings = append(res.Warnings, warnings...)
		logger.Debug("history parse finished",
			zap.String("dialect", a.Source.Dialect.String()),
			zap.String("path", a.Source.Path),
			zap.Int("entries", len(parsed)))
		commands = parsed
	}

	commands = BudgetCommands(commands, a.Limits.MaxChars)

	if len(commands) > 0 {
		last := commands[len(commands)-1]
		res.Context.LastCommand = &last
		res.Context.PreviousCommands = LimitCommands(commands[:len(commands)-1], prevCap)
	}

	res.Context.UserMessages = opts.UserMessages

	if res.Context.Empty() {
		return res, ErrNoContext
	}
	return res, nil
}

// captureLive snapshots the pane and segments it into commands. The whole
// pane becomes a single block when the prompt is unknown or segmentation
// finds nothing.
func (a *Assembler) captureLive(ctx context.Context, prevCap int, res *Result, logger *zap.Logger) []types.CapturedCommand {
	pane, err := a.Capturer.Capture(ctx)
	if err != nil {
		res.Warnings = append(res.Warnings, "live pane capture unavailable, falling back to shell history")
		logger.Debug("pane capture unavailable", zap.String("capturer", a.Capturer.Name()), zap.Error(err))
		return nil
	}
	if strings.TrimSpace(pane) == "" {
		res.Warnings = append(res.Warnings, "pane capture returned no text, falling back to shell history")
		return nil
	}

	logger.Debug("pane captured",
		zap.String("capturer", a.Capturer.Name()),
		zap.Int("chars", len(pane)))

	// Verbatim sources (piped stdin) are already exact context: no prompt
	// lines to anchor on and no invocation line to drop.
	if a.Capturer.Verbatim() {
		return []types.CapturedCommand{{Output: strings.TrimSpace(pane)}}
	}

	if a.Shell.Prompt != "" {
		if commands := SegmentPane(pane, a.Shell.Prompt, prevCap+1); len(commands) > 0 {
			return commands
		}
	}

	whole := WholePane(pane)
	if whole.Output == "" {
		return nil
	}
	return []types.CapturedCommand{whole}
}

func (a *Assembler) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
