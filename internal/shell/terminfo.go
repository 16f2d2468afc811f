package shell

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/skyresth/outexplain/internal/types"
)

// emulator process names checked against the parent chain, most specific
// first.
var emulatorCandidates = []string{
	"windowsterminal", "wezterm", "iterm2", "alacritty",
	"hyper", "kitty", "gnome-terminal", "konsole", "xterm",
	"terminator", "tilix", "tmux", "screen", "conhost",
	"powershell", "pwsh", "cmd", "code",
}

// DetectTerminalInfo gathers terminal and shell capabilities for the env
// debug command and for log context.
func DetectTerminalInfo(sh types.Shell) types.TerminalInfo {
	termEnv := os.Getenv("TERM")
	parentChain := ParentChain()

	emulator := emulatorFromProcessChain(parentChain)
	if emulator == "" {
		emulator = emulatorFromEnv(termEnv)
	}

	return types.TerminalInfo{
		OS:                 runtime.GOOS,
		Platform:           runtime.GOOS + "/" + runtime.GOARCH,
		IsTTY:              term.IsTerminal(int(os.Stdout.Fd())),
		ShellName:          sh.Name,
		ShellPath:          sh.Path,
		ShellPrompt:        sh.Prompt,
		Term:               termEnv,
		TermProgram:        os.Getenv("TERM_PROGRAM"),
		TermProgramVersion: os.Getenv("TERM_PROGRAM_VERSION"),
		Emulator:           emulator,
		ParentChain:        parentChain,
		IsTmux:             boolEnv("TMUX"),
		IsScreen:           boolEnv("STY"),
		IsWSL:              os.Getenv("WSL_DISTRO_NAME") != "" || os.Getenv("WSL_INTEROP") != "",
		IsWindowsTerminal:  boolEnv("WT_SESSION"),
		ColorDepth:         detectColorDepth(termEnv),
		SupportsHyperlinks: detectHyperlinks(termEnv),
		SupportsEmoji:      detectEmojiSupport(),
	}
}

func boolEnv(name string) bool {
	switch os.Getenv(name) {
	case "", "0", "false", "False":
		return false
	}
	return true
}

func detectColorDepth(termEnv string) int {
	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return 24
	}
	if strings.Contains(termEnv, "256color") {
		return 256
	}
	if os.Getenv("WT_SESSION") != "" {
		return 24
	}
	return 16
}

func detectHyperlinks(termEnv string) bool {
	if os.Getenv("WT_SESSION") != "" {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Hyper", "vscode":
		return true
	}
	if strings.Contains(termEnv, "kitty") {
		return true
	}
	if vte := os.Getenv("VTE_VERSION"); vte != "" {
		if v, err := strconv.Atoi(vte); err == nil && v >= 5000 {
			return true
		}
	}
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	return os.Getenv("TMUX") != "" && strings.Contains(termEnv, "kitty")
}

func detectEmojiSupport() bool {
	if os.Getenv("WT_SESSION") != "" {
		return true
	}
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		return true
	}
	return false
}

func emulatorFromEnv(termEnv string) string {
	if os.Getenv("WT_SESSION") != "" {
		return "WindowsTerminal"
	}
	if tp := os.Getenv("TERM_PROGRAM"); tp != "" {
		return tp
	}
	if strings.Contains(termEnv, "kitty") {
		return "kitty"
	}
	if strings.Contains(termEnv, "xterm") {
		return "xterm"
	}
	return ""
}

func emulatorFromProcessChain(chain []string) string {
	for _, candidate := range emulatorCandidates {
		for _, name := range chain {
			if strings.Contains(strings.ToLower(name), candidate) {
				return candidate
			}
		}
	}
	return ""
}
