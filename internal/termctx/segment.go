package termctx

import (
	"regexp"
	"strings"

	"github.com/skyresth/outexplain/internal/types"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripANSI removes color and cursor control sequences so prompt matching
// works on what the user typed, not on how it was painted.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// selfPrefix drops this tool's own invocation from segmented pane text.
const selfPrefix = "outexplain"

// SegmentPane splits captured pane text into command/output pairs using
// the shell prompt as the anchor, scanning bottom-up so the newest max
// commands are found without walking the whole scrollback. Returns entries
// oldest-first with stable Order values.
//
// When prompt is empty only heuristic prompt detection applies, which is
// unreliable; callers should prefer WholePane in that case.
func SegmentPane(paneText, prompt string, max int) []types.CapturedCommand {
	promptCmp := strings.TrimSpace(StripANSI(prompt))

	var commands []types.CapturedCommand
	var buffer []string

	lines := strings.Split(paneText, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineCmp := StripANSI(line)

		cmdText, isPrompt := splitAtPrompt(lineCmp, promptCmp)
		if !isPrompt {
			buffer = append(buffer, line)
			continue
		}

		output := joinReversed(buffer)
		commands = append(commands, types.CapturedCommand{
			Command: cmdText,
			Output:  strings.TrimSpace(output),
		})
		buffer = buffer[:0]

		if max > 0 && len(commands) >= max {
			break
		}
	}

	// commands were collected newest-first; flip and number oldest-first.
	var ordered []types.CapturedCommand
	for i := len(commands) - 1; i >= 0; i-- {
		c := commands[i]
		if strings.HasPrefix(strings.ToLower(c.Command), selfPrefix) {
			continue
		}
		c.Order = len(ordered)
		ordered = append(ordered, c)
	}
	return ordered
}

// splitAtPrompt decides whether a line is a prompt line and extracts the
// command text after the prompt.
func splitAtPrompt(line, prompt string) (string, bool) {
	if prompt != "" && strings.Contains(line, prompt) {
		idx := strings.LastIndex(line, prompt)
		return strings.TrimSpace(line[idx+len(prompt):]), true
	}
	if looksLikePromptLine(line) {
		// Heuristic prompt with no known prompt text: the trailing word is
		// the best guess at the command.
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return fields[len(fields)-1], true
		}
		return line, true
	}
	return "", false
}

// looksLikePromptLine matches bare prompt endings ($, #, >) for shells
// whose prompt we could not discover.
func looksLikePromptLine(line string) bool {
	s := strings.TrimRight(line, " ")
	if s == "" {
		return false
	}
	return strings.HasSuffix(s, "$") || strings.HasSuffix(s, "#") || strings.HasSuffix(s, ">")
}

// WholePane turns an unsegmentable pane snapshot into a single command
// block: trailing blank lines and the invocation line itself are dropped,
// and the remainder becomes output for an unknown command.
func WholePane(paneText string) types.CapturedCommand {
	lines := strings.Split(paneText, "\n")

	// Walk up past trailing blanks, then drop the invocation line.
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if end > 0 {
		end--
	}

	return types.CapturedCommand{
		Output: strings.TrimSpace(strings.Join(lines[:end], "\n")),
	}
}

func joinReversed(buffer []string) string {
	if len(buffer) == 0 {
		return ""
	}
	reversed := make([]string, len(buffer))
	for i, line := range buffer {
		reversed[len(buffer)-1-i] = line
	}
	return strings.Join(reversed, "\n")
}
