package shell

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// promptTimeout bounds the shell invocation used to discover the prompt.
// A shell with a slow login profile must not stall the whole run.
const promptTimeout = 3 * time.Second

// DetectPrompt asks the user's shell to print its primary prompt. The
// prompt anchors pane segmentation, so a wrong prompt is worse than none;
// any failure returns "".
func DetectPrompt(shellName, shellPath string) string {
	if shellName == "" || shellPath == "" {
		return ""
	}

	switch shellName {
	case "bash":
		return runPrompt(shellPath, "-lc", `echo -n "${PS1@P}"`)
	case "zsh":
		return runPrompt(shellPath, "-lc", `print -Pn "$PS1"`)
	case "fish":
		return runPrompt(shellPath, "-lc", "functions -q fish_prompt; fish_prompt")
	case "csh", "tcsh":
		return runPrompt(shellPath, "-c", "echo -n $prompt")
	case "pwsh", "powershell":
		return runPrompt(shellPath, "-NoProfile", "-Command", "(& prompt)")
	}
	return ""
}

func runPrompt(name string, args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), promptTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(out), "\n")
}
