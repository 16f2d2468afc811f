package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/skyresth/outexplain/internal/ai"
	"github.com/skyresth/outexplain/internal/capture"
	"github.com/skyresth/outexplain/internal/config"
	"github.com/skyresth/outexplain/internal/logging"
	"github.com/skyresth/outexplain/internal/shell"
	"github.com/skyresth/outexplain/internal/termctx"
	"github.com/skyresth/outexplain/internal/types"
	"github.com/skyresth/outexplain/internal/ui"
)

// runExplain is the main flow: assemble terminal context, build the query
// and print the provider's answer.
func runExplain() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirs(); err != nil {
		ui.PrintWarning(fmt.Sprintf("could not create data directories: %v", err))
	}
	applyFlagOverrides(cfg)

	logger := logging.New(cfg.Logging.File, cfg.Logging.Level)
	defer logger.Sync()

	sh := shell.Detect()
	logger.Info("shell detected",
		zap.String("name", sh.Name),
		zap.String("path", sh.Path),
		zap.Bool("prompt_known", sh.Prompt != ""))

	if debug || debugEnv {
		info := shell.DetectTerminalInfo(sh)
		fmt.Println(ui.RenderTerminalInfo(info))
	}

	userMessages := combineUserMessages()

	assembler := &termctx.Assembler{
		Capturer: selectCapturer(cfg),
		Shell:    sh,
		Source:   shell.ResolveHistorySource(sh),
		Limits:   cfg.Limits,
		Logger:   logger,
	}

	res, err := assembler.Assemble(context.Background(), termctx.Options{
		UserMessages:     userMessages,
		PreferLive:       reviewN == 0,
		PreviousCommands: lastN,
		HistoryCount:     reviewN,
	})
	for _, w := range res.Warnings {
		ui.PrintWarning(w)
	}
	if err != nil {
		if !errors.Is(err, termctx.ErrNoContext) {
			return err
		}
		// No captured activity. A direct question can still be answered;
		// otherwise there is nothing to explain.
		if len(userMessages) == 0 {
			return errors.New("no terminal context found; run inside tmux/screen, pipe output in, or ask a question with -m")
		}
		ui.PrintWarning("no terminal context found, answering from your message alone")
	}

	if debug {
		printDebugContext(res.Context, sh)
	}

	provider, err := ai.NewProvider(cfg)
	if err != nil {
		return err
	}
	logger.Info("provider selected",
		zap.String("provider", provider.Name()),
		zap.String("model", cfg.Model.Name))

	rendered := ai.RenderContext(res.Context, sh.Prompt)
	query := ai.BuildQuery(rendered, userMessages)
	system := ai.SystemPromptFor(userMessages)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Model.TimeoutSeconds)*time.Second)
	defer cancel()

	ui.PrintThinking()
	answer, err := provider.Complete(ctx, system, query)
	if err != nil {
		logger.Error("completion failed", zap.Error(err))
		return fmt.Errorf("%s request failed: %w", provider.Name(), err)
	}

	ui.PrintAnswer(answer)
	return nil
}

// applyFlagOverrides gives CLI flags the last word over config and env.
func applyFlagOverrides(cfg *config.Config) {
	if providerName != "" {
		cfg.Provider.Name = providerName
	}
	if modelName != "" {
		cfg.Model.Name = modelName
	}
}

// selectCapturer picks the live pane source for this run. Piped stdin wins
// over any multiplexer: when the user pipes output in, that IS the context.
func selectCapturer(cfg *config.Config) capture.Capturer {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return &capture.StdinCapturer{Reader: os.Stdin}
	}
	return capture.Detect(cfg.Limits.MaxHistory)
}

func printDebugContext(c types.Context, sh types.Shell) {
	ui.PrintDebug(fmt.Sprintf("shell: %s (%s)", sh.Name, sh.Dialect()))
	ui.PrintDebug(fmt.Sprintf("previous commands: %d", len(c.PreviousCommands)))
	if c.LastCommand != nil {
		ui.PrintDebug(fmt.Sprintf("last command: %q (%d chars of output)",
			c.LastCommand.Command, len(c.LastCommand.Output)))
	}
	ui.PrintDebug(fmt.Sprintf("user messages: %d", len(c.UserMessages)))
}
