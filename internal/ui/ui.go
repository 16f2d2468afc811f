// Package ui provides terminal output for answers, warnings and errors
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/skyresth/outexplain/internal/types"
)

var (
	Dim     = color.New(color.Faint).SprintFunc()
	Warning = color.New(color.FgYellow, color.Bold).SprintFunc()
	Error   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// fallbackWidth is used when stdout is not a terminal.
const fallbackWidth = 80

// PrintWarning displays a clearly marked warning. Warnings go to stderr so
// they never end up mixed into piped answer text.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Warning("⚠"), message)
}

// PrintError displays an error message on stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Error("✗"), message)
}

// PrintDebug displays a dim diagnostic line, used only with --debug
func PrintDebug(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", Dim("outexplain | "+message))
}

// PrintAnswer renders the model's answer wrapped to the terminal width.
func PrintAnswer(answer string) {
	width := terminalWidth()
	fmt.Println()
	fmt.Println(wordwrap.String(strings.TrimSpace(answer), width))
}

// PrintThinking shows a short status line while the request is in flight
func PrintThinking() {
	fmt.Fprintf(os.Stderr, "%s\n", Dim("thinking..."))
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// RenderTerminalInfo formats detected terminal capabilities for --debug-env
// and the env command.
func RenderTerminalInfo(info types.TerminalInfo) string {
	chain := info.ParentChain
	if len(chain) > 8 {
		chain = append(append([]string{}, chain[:8]...), "…")
	}

	var b strings.Builder
	row := func(key string, value interface{}) {
		fmt.Fprintf(&b, "%-22s %v\n", key+":", value)
	}

	row("os", info.OS)
	row("platform", info.Platform)
	row("is_tty", info.IsTTY)
	row("shell_name", info.ShellName)
	row("shell_path", info.ShellPath)
	row("shell_prompt", info.ShellPrompt)
	row("term", info.Term)
	row("term_program", info.TermProgram)
	row("term_program_version", info.TermProgramVersion)
	row("emulator", info.Emulator)
	row("parent_chain", strings.Join(chain, " > "))
	row("is_tmux", info.IsTmux)
	row("is_screen", info.IsScreen)
	row("is_wsl", info.IsWSL)
	row("is_windows_terminal", info.IsWindowsTerminal)
	row("color_depth", info.ColorDepth)
	row("supports_hyperlinks", info.SupportsHyperlinks)
	row("supports_emoji", info.SupportsEmoji)

	return strings.TrimRight(b.String(), "\n")
}
