// Package ai provides the LLM provider interface and implementations
package ai

import (
	"context"
	"strings"

	"github.com/skyresth/outexplain/internal/types"
)

// Provider defines the interface for LLM providers. The request layer is
// deliberately thin: one system message, one user message, one answer.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends the system and user messages and returns the
	// model's answer as plain text.
	Complete(ctx context.Context, systemMessage, userMessage string) (string, error)
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExplainPrompt is the system prompt used when the user asked no explicit
// question: explain what the last command did and what its output means.
const ExplainPrompt = `You are a terminal assistant. The user will give you their recent terminal history: previous commands with their output, and the last command they ran.

Explain the output of the last command:
1. Say what the command does in one sentence.
2. Explain what the output means, focusing on errors, warnings, or surprising results.
3. If something failed, state the likely cause and the most direct fix.

Use the previous commands only as context. Be concise. Format for a terminal: short paragraphs, no markdown headers, commands indented with two spaces.`

// AnswerPrompt is the system prompt used when the user supplied a
// question: answer it against the terminal history.
const AnswerPrompt = `You are a terminal assistant. The user will give you their recent terminal history (previous commands, their output, and the last command) followed by a question.

Answer the question directly, grounded in the terminal history. If the history does not contain enough information, say what is missing rather than guessing.

Be concise. Format for a terminal: short paragraphs, no markdown headers, commands indented with two spaces.`

// defaultQuery stands in when the user supplied no message.
const defaultQuery = "Explain the last command's output. Use previous commands as context, but focus on the last command."

// RenderContext formats an assembled context into the two-region prompt
// layout (previous commands, then the single last command) so prompts stay
// structurally consistent regardless of provider.
func RenderContext(c types.Context, shellPrompt string) string {
	if shellPrompt == "" {
		shellPrompt = "$"
	}

	var b strings.Builder
	b.WriteString("<terminal_history>\n")

	b.WriteString("<previous_commands>\n")
	for i, cmd := range c.PreviousCommands {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(commandToString(cmd, shellPrompt))
	}
	b.WriteString("\n</previous_commands>\n")

	if c.LastCommand != nil {
		b.WriteString("\n<last_command>\n")
		b.WriteString(commandToString(*c.LastCommand, shellPrompt))
		b.WriteString("\n</last_command>\n")
	}

	b.WriteString("</terminal_history>")
	return b.String()
}

func commandToString(cmd types.CapturedCommand, shellPrompt string) string {
	s := shellPrompt + " " + cmd.Command
	if output := strings.TrimSpace(cmd.Output); output != "" {
		s += "\n" + output
	} else {
		s += "\n(output missing)"
	}
	return s
}

// BuildQuery joins the rendered context with the user's messages. When no
// messages were supplied the default explain query is used.
func BuildQuery(renderedContext string, userMessages []string) string {
	var kept []string
	for _, m := range userMessages {
		if m = strings.TrimSpace(m); m != "" {
			kept = append(kept, m)
		}
	}

	query := strings.Join(kept, "\n")
	if query == "" {
		query = defaultQuery
	}
	return renderedContext + "\n\n" + query
}

// SystemPromptFor picks the system prompt: AnswerPrompt when the user
// asked something, ExplainPrompt otherwise.
func SystemPromptFor(userMessages []string) string {
	for _, m := range userMessages {
		if strings.TrimSpace(m) != "" {
			return AnswerPrompt
		}
	}
	return ExplainPrompt
}
