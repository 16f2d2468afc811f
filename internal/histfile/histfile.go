// Package histfile parses persisted shell history into captured commands.
//
// Parsers are a closed set dispatched on the source dialect. They never
// fail hard: a missing, empty or unreadable file yields an empty result
// plus a warning, and the caller moves on to its next source.
package histfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/skyresth/outexplain/internal/types"
)

// selfInvocations are command prefixes that would only pollute the context
// with this tool's own runs.
var selfInvocations = []string{
	"outexplain",
	"python -m outexplain",
}

// Parse extracts at most count most-recent entries from the source,
// oldest-first. Warnings describe sources that could not be read; they are
// advisory and never escalate to errors.
func Parse(source types.HistoryLogSource, count int) ([]types.CapturedCommand, []string) {
	if count <= 0 {
		return nil, nil
	}

	switch source.Dialect {
	case types.DialectPowerShell:
		return parsePowerShell(source, count)
	default:
		return parsePosix(source, count)
	}
}

// parsePosix reads a line-oriented history file: one command per physical
// line after prefix stripping, no stored output.
func parsePosix(source types.HistoryLogSource, count int) ([]types.CapturedCommand, []string) {
	lines, warning := readLines(source.Path)
	if warning != "" {
		return nil, []string{warning}
	}

	var cleaned []string
	for _, line := range lines {
		if cmd := cleanHistoryLine(line); cmd != "" {
			cleaned = append(cleaned, cmd)
		}
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

// cleanHistoryLine strips dialect prefixes from one history line.
// Returns "" for lines that carry no command.
func cleanHistoryLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || isSelfInvocation(line) {
		return ""
	}

	// zsh extended format: ": 1700000000:0;command"
	if strings.HasPrefix(line, ":") {
		if idx := strings.Index(line, ";"); idx != -1 {
			line = strings.TrimSpace(line[idx+1:])
		}
	}

	// `history` builtin output: " 203  ls -la"
	if line != "" && line[0] >= '0' && line[0] <= '9' {
		if idx := strings.IndexByte(line, ' '); idx != -1 {
			rest := strings.TrimSpace(line[idx+1:])
			if _, isNumber := numericPrefix(line[:idx]); isNumber && rest != "" {
				line = rest
			}
		}
	}

	if isSelfInvocation(line) {
		return ""
	}
	return line
}

func numericPrefix(s string) (string, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, s != ""
}

func isSelfInvocation(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range selfInvocations {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// readLines slurps a file line by line. The scoped open/close guarantees
// the handle is released on every path, including scan errors.
func readLines(path string) ([]string, string) {
	if path == "" {
		return nil, "no history file resolved for this shell"
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Sprintf("history file %s does not exist", path)
		}
		return nil, fmt.Sprintf("history file %s is unreadable: %v", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Sprintf("history file %s could not be scanned: %v", path, err)
	}

	if len(lines) == 0 {
		return nil, fmt.Sprintf("history file %s is empty", path)
	}
	return lines, ""
}
