// Package logging sets up the file-backed zap logger.
//
// Logs never go to the terminal: the assembled answer and any warnings own
// stdout/stderr, so diagnostics are written to the log file only. Use
// `tail -f ~/.outexplain/outexplain.log` to follow a run.
package logging

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production zap logger writing to logFile at the given level.
// Every record carries a run_id so overlapping invocations can be told
// apart in the shared file. Failure to open the log file degrades to a
// no-op logger rather than breaking the CLI.
func New(logFile string, level string) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = parseLevel(level)
	cfg.OutputPaths = []string{logFile}
	cfg.ErrorOutputPaths = []string{logFile}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger.With(zap.String("run_id", uuid.New().String()))
}

func parseLevel(level string) zap.AtomicLevel {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = zapcore.InfoLevel
	}
	return zap.NewAtomicLevelAt(l)
}
