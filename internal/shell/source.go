package shell

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/skyresth/outexplain/internal/types"
)

// ResolveHistorySource maps a shell onto the persisted log it maintains.
// The result is immutable: callers hand it to the history parser as-is.
//
// For posix shells the path is $HISTFILE when set, otherwise the
// conventional dotfile for the shell name. For PowerShell the path is the
// most recently modified transcript under ~/Documents, with the PSReadLine
// ConsoleHost_history.txt as the command-only fallback.
func ResolveHistorySource(sh types.Shell) types.HistoryLogSource {
	if sh.Dialect() == types.DialectPowerShell {
		return types.HistoryLogSource{
			Dialect:  types.DialectPowerShell,
			Path:     newestTranscript(),
			Fallback: consoleHostHistory(),
		}
	}

	return types.HistoryLogSource{
		Dialect: types.DialectPosix,
		Path:    posixHistoryFile(sh.Name),
	}
}

func posixHistoryFile(shellName string) string {
	if histFile := os.Getenv("HISTFILE"); histFile != "" {
		return expandHome(histFile)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch shellName {
	case "zsh":
		return filepath.Join(homeDir, ".zsh_history")
	case "fish":
		return filepath.Join(homeDir, ".local", "share", "fish", "fish_history")
	case "csh", "tcsh":
		return filepath.Join(homeDir, ".history")
	default:
		return filepath.Join(homeDir, ".bash_history")
	}
}

// newestTranscript finds the most recently modified PowerShell transcript.
// Returns "" when none exists; the parser then uses the fallback path.
func newestTranscript() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	matches, err := filepath.Glob(filepath.Join(homeDir, "Documents", "PowerShell_transcript*.txt"))
	if err != nil || len(matches) == 0 {
		return ""
	}

	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]).After(modTime(matches[j]))
	})
	return matches[0]
}

func consoleHostHistory() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ""
	}

	candidates := []string{
		filepath.Join(appData, "Microsoft", "PowerShell", "PSReadLine", "ConsoleHost_history.txt"),
		filepath.Join(appData, "Microsoft", "Windows", "PowerShell", "PSReadLine", "ConsoleHost_history.txt"),
	}

	var newest string
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if newest == "" || modTime(path).After(modTime(newest)) {
			newest = path
		}
	}
	return newest
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
