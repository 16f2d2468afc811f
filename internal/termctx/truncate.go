package termctx

import (
	"github.com/skyresth/outexplain/internal/types"
)

// Truncation policy, fixed and deterministic:
//
//   - command text keeps its HEAD (the invocation is most informative at
//     its start),
//   - output text keeps its TAIL (the end of output carries the error or
//     result being asked about),
//   - sequence limiting keeps the NEWEST entries,
//   - a shared character budget across command/output fields is spent on
//     the newest commands first, dropping older entries whole.
//
// All cuts land on rune boundaries. Truncating an already-truncated value
// is a no-op.

// TruncateHead keeps the first max runes of s.
func TruncateHead(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// TruncateTail keeps the last max runes of s.
func TruncateTail(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[len(runes)-max:])
}

// LimitCommands keeps the newest max entries, preserving oldest-first
// order and the original Order values.
func LimitCommands(commands []types.CapturedCommand, max int) []types.CapturedCommand {
	if max <= 0 {
		return nil
	}
	if len(commands) <= max {
		return commands
	}
	return commands[len(commands)-max:]
}

// BudgetCommands applies the shared character budget: walking newest to
// oldest, each command's text (head-kept) and output (tail-kept) consume
// from maxChars; once the budget is spent, older entries are dropped
// entirely. The newest entry always survives, truncated to fit. Order
// values are preserved, result is oldest-first.
func BudgetCommands(commands []types.CapturedCommand, maxChars int) []types.CapturedCommand {
	if len(commands) == 0 || maxChars <= 0 {
		return nil
	}

	budget := maxChars
	var kept []types.CapturedCommand

	for i := len(commands) - 1; i >= 0; i-- {
		c := commands[i]

		cmdRunes := len([]rune(c.Command))
		if cmdRunes > budget && len(kept) > 0 {
			// An older command that no longer fits ends the walk: a
			// partial old invocation is worth less than the budget it
			// would eat.
			break
		}

		c.Command = TruncateHead(c.Command, budget)
		budget -= len([]rune(c.Command))

		c.Output = TruncateTail(c.Output, budget)
		budget -= len([]rune(c.Output))

		kept = append(kept, c)
		if budget == 0 {
			break
		}
	}

	// kept was built newest-first; restore oldest-first.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
