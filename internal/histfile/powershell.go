package histfile

import (
	"strings"

	"github.com/skyresth/outexplain/internal/types"
)

// transcriptMarker delimits the metadata blocks a PowerShell transcript
// wraps around its start, end and per-command headers.
const transcriptMarker = "**********************"

// parsePowerShell segments a transcript into command/output pairs. When no
// transcript yields anything it degrades to the PSReadLine history file,
// which stores commands only.
func parsePowerShell(source types.HistoryLogSource, count int) ([]types.CapturedCommand, []string) {
	var warnings []string

	if source.Path != "" {
		commands, warning := parseTranscript(source.Path, count)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		if len(commands) > 0 {
			return commands, warnings
		}
	} else {
		warnings = append(warnings, "no PowerShell transcript found")
	}

	commands, fallbackWarnings := parseConsoleHost(source.Fallback, count)
	return commands, append(warnings, fallbackWarnings...)
}

func parseTranscript(path string, count int) ([]types.CapturedCommand, string) {
	lines, warning := readLines(path)
	if warning != "" {
		return nil, warning
	}

	type block struct {
		command string
		output  []string
	}

	var blocks []block
	inMeta := false
	for _, line := range lines {
		if strings.HasPrefix(line, transcriptMarker) {
			inMeta = !inMeta
			continue
		}
		if inMeta {
			continue
		}

		if cmd, ok := transcriptCommand(line); ok {
			// A prompt line with no command text is the shell idling.
			if cmd == "" || isSelfInvocation(cmd) {
				blocks = append(blocks, block{})
				continue
			}
			blocks = append(blocks, block{command: cmd})
			continue
		}

		// Output belongs to the most recent command. A block that never
		// receives output stays command-only rather than being dropped.
		if len(blocks) > 0 && blocks[len(blocks)-1].command != "" {
			blocks[len(blocks)-1].output = append(blocks[len(blocks)-1].output, line)
		}
	}

	var commands []types.CapturedCommand
	for _, b := range blocks {
		if b.command == "" {
			continue
		}
		commands = append(commands, types.CapturedCommand{
			Command: b.command,
			Output:  strings.TrimSpace(strings.Join(b.output, "\n")),
		})
	}

	if len(commands) > count {
		commands = commands[len(commands)-count:]
	}
	for i := range commands {
		commands[i].Order = i
	}
	return commands, ""
}

// transcriptCommand recognizes a transcript prompt line ("PS C:\...> cmd")
// and extracts the command text after the prompt.
func transcriptCommand(line string) (string, bool) {
	if !strings.HasPrefix(line, "PS ") {
		return "", false
	}
	idx := strings.Index(line, ">")
	if idx == -1 {
		return "", false
	}
	return strings.TrimSpace(line[idx+1:]), true
}

// parseConsoleHost reads the PSReadLine history file: one command per
// line, no output recorded.
func parseConsoleHost(path string, count int) ([]types.CapturedCommand, []string) {
	lines, warning := readLines(path)
	if warning != "" {
		return nil, []string{warning}
	}

	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isSelfInvocation(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	if len(cleaned) > count {
		cleaned = cleaned[len(cleaned)-count:]
	}

	commands := make([]types.CapturedCommand, 0, len(cleaned))
	for i, cmd := range cleaned {
		commands = append(commands, types.CapturedCommand{Command: cmd, Order: i})
	}
	return commands, nil
}
