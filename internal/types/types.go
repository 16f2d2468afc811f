// Package types provides shared type definitions for outexplain
package types

// Dialect identifies the history/transcript file format of a shell family.
type Dialect string

const (
	// DialectPosix covers bash, zsh and other shells with line-oriented
	// history files.
	DialectPosix Dialect = "posix"
	// DialectPowerShell covers Windows PowerShell and pwsh, which record
	// transcripts and a PSReadLine history file.
	DialectPowerShell Dialect = "powershell"
)

func (d Dialect) String() string {
	return string(d)
}

// CapturedCommand represents one shell invocation and its textual result.
// Order is stable insertion order, oldest-first, and is never re-sorted.
type CapturedCommand struct {
	Command string `json:"command"`
	Output  string `json:"output"`
	Order   int    `json:"order"`
}

// HistoryLogSource identifies which persisted log to read and how to parse
// it. Immutable once resolved. Fallback is a secondary command-only history
// file consulted when Path yields nothing (PowerShell transcripts fall back
// to ConsoleHost_history.txt).
type HistoryLogSource struct {
	Dialect  Dialect `json:"dialect"`
	Path     string  `json:"path"`
	Fallback string  `json:"fallback,omitempty"`
}

// Shell describes the user's shell as detected at startup.
type Shell struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Prompt string `json:"prompt,omitempty"`
}

// Dialect maps the shell name onto a history dialect.
func (s Shell) Dialect() Dialect {
	switch s.Name {
	case "powershell", "pwsh":
		return DialectPowerShell
	default:
		return DialectPosix
	}
}

// Context is the single artifact handed to the request layer.
// PreviousCommands is ordered oldest-first; LastCommand, when present,
// carries the maximum Order value; UserMessages survive verbatim.
type Context struct {
	PreviousCommands []CapturedCommand `json:"previous_commands"`
	LastCommand      *CapturedCommand  `json:"last_command,omitempty"`
	UserMessages     []string          `json:"user_messages,omitempty"`
}

// Empty reports whether the context carries no terminal history at all.
func (c *Context) Empty() bool {
	return len(c.PreviousCommands) == 0 && c.LastCommand == nil
}

// TerminalInfo contains detected terminal and shell capabilities.
type TerminalInfo struct {
	OS                 string   `json:"os"`
	Platform           string   `json:"platform"`
	IsTTY              bool     `json:"is_tty"`
	ShellName          string   `json:"shell_name,omitempty"`
	ShellPath          string   `json:"shell_path,omitempty"`
	ShellPrompt        string   `json:"shell_prompt,omitempty"`
	Term               string   `json:"term,omitempty"`
	TermProgram        string   `json:"term_program,omitempty"`
	TermProgramVersion string   `json:"term_program_version,omitempty"`
	Emulator           string   `json:"emulator,omitempty"`
	ParentChain        []string `json:"parent_chain,omitempty"`
	IsTmux             bool     `json:"is_tmux"`
	IsScreen           bool     `json:"is_screen"`
	IsWSL              bool     `json:"is_wsl"`
	IsWindowsTerminal  bool     `json:"is_windows_terminal"`
	ColorDepth         int      `json:"color_depth"`
	SupportsHyperlinks bool     `json:"supports_hyperlinks"`
	SupportsEmoji      bool     `json:"supports_emoji"`
}
