// Package shell detects the user's shell and resolves its history sources
package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/skyresth/outexplain/internal/types"
)

// knownShells is the set of shell names we can resolve history for.
var knownShells = map[string]bool{
	"bash":       true,
	"fish":       true,
	"zsh":        true,
	"csh":        true,
	"tcsh":       true,
	"powershell": true,
	"pwsh":       true,
}

// aliasMap folds shell variants onto the name their history format matches.
var aliasMap = map[string]string{
	"sh":  "bash",
	"ksh": "bash",
	"cmd": "powershell",
}

// Detect resolves the current shell's name, path and prompt. The $SHELL
// environment variable wins; when it names nothing usable the parent
// process chain is walked until a known shell appears.
func Detect() types.Shell {
	name, path := nameAndPath()
	return types.Shell{
		Name:   name,
		Path:   path,
		Prompt: DetectPrompt(name, path),
	}
}

func nameAndPath() (string, string) {
	envPath := os.Getenv("SHELL")
	if envPath == "" {
		envPath = os.Getenv("TF_SHELL")
	}
	if name := normalizeName(envPath); name != "" {
		return name, envPath
	}

	if name := shellFromParentChain(); name != "" {
		return name, name
	}

	return normalizeName(envPath), envPath
}

// normalizeName extracts a known shell name from an executable path,
// returning "" when the path does not name a shell we understand.
func normalizeName(shellPath string) string {
	if shellPath == "" {
		return ""
	}
	base := strings.ToLower(filepath.Base(shellPath))
	base = strings.TrimSuffix(base, ".exe")
	if alias, ok := aliasMap[base]; ok {
		base = alias
	}
	if knownShells[base] {
		return base
	}
	return ""
}

// shellFromParentChain walks up the process tree looking for a shell.
// Covers invocations where $SHELL is unset or wrong (Git Bash on Windows,
// containers, pwsh launched from a login bash).
func shellFromParentChain() string {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ""
	}
	for proc != nil && proc.Pid > 0 {
		name, err := proc.Name()
		if err != nil {
			return ""
		}
		name = strings.TrimSuffix(strings.ToLower(name), ".exe")
		if knownShells[name] {
			return name
		}
		proc, err = proc.Parent()
		if err != nil {
			return ""
		}
	}
	return ""
}

// ParentChain returns the process names from this process up to the root.
// Used for terminal emulator detection and the env debug command.
func ParentChain() []string {
	var names []string
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return names
	}
	for proc != nil && proc.Pid > 0 {
		name, err := proc.Name()
		if err != nil {
			break
		}
		names = append(names, name)
		proc, err = proc.Parent()
		if err != nil {
			break
		}
	}
	return names
}
