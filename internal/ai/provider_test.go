package ai

import (
	"strings"
	"testing"

	"github.com/skyresth/outexplain/internal/types"
)

func TestRenderContext(t *testing.T) {
	c := types.Context{
		PreviousCommands: []types.CapturedCommand{
			{Command: "ls", Output: "main.go", Order: 0},
			{Command: "cat missing.txt", Order: 1},
		},
		LastCommand: &types.CapturedCommand{
			Command: "go build",
			Output:  "undefined: foo",
			Order:   2,
		},
	}

	rendered := RenderContext(c, "user@host:~$")

	for _, want := range []string{
		"<terminal_history>",
		"</terminal_history>",
		"<previous_commands>",
		"</previous_commands>",
		"<last_command>",
		"</last_command>",
		"user@host:~$ ls\nmain.go",
		"user@host:~$ cat missing.txt\n(output missing)",
		"user@host:~$ go build\nundefined: foo",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered context missing %q:\n%s", want, rendered)
		}
	}

	// The last command belongs in its own region, not among the previous ones.
	prev := rendered[strings.Index(rendered, "<previous_commands>"):strings.Index(rendered, "</previous_commands>")]
	if strings.Contains(prev, "go build") {
		t.Error("last command leaked into the previous_commands region")
	}
}

func TestRenderContextDefaults(t *testing.T) {
	c := types.Context{
		LastCommand: &types.CapturedCommand{Command: "pwd", Output: "/home/dev"},
	}

	rendered := RenderContext(c, "")
	if !strings.Contains(rendered, "$ pwd") {
		t.Errorf("expected the fallback prompt, got:\n%s", rendered)
	}
}

func TestRenderContextNoLastCommand(t *testing.T) {
	rendered := RenderContext(types.Context{}, "$")
	if strings.Contains(rendered, "<last_command>") {
		t.Error("empty context must not emit a last_command region")
	}
}

func TestBuildQuery(t *testing.T) {
	rendered := "<terminal_history>\n</terminal_history>"

	t.Run("default query", func(t *testing.T) {
		got := BuildQuery(rendered, nil)
		if !strings.Contains(got, defaultQuery) {
			t.Errorf("expected the default query, got %q", got)
		}
		if !strings.HasPrefix(got, rendered) {
			t.Error("query must start with the rendered context")
		}
	})

	t.Run("user messages joined in order", func(t *testing.T) {
		got := BuildQuery(rendered, []string{"why did this fail?", "and how do I fix it?"})
		if !strings.Contains(got, "why did this fail?\nand how do I fix it?") {
			t.Errorf("messages not joined in order: %q", got)
		}
		if strings.Contains(got, defaultQuery) {
			t.Error("default query must not appear alongside user messages")
		}
	})

	t.Run("blank messages fall back to default", func(t *testing.T) {
		got := BuildQuery(rendered, []string{"  ", ""})
		if !strings.Contains(got, defaultQuery) {
			t.Errorf("expected the default query for blank messages, got %q", got)
		}
	})
}

func TestSystemPromptFor(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     string
	}{
		{"no messages", nil, ExplainPrompt},
		{"blank messages", []string{" ", ""}, ExplainPrompt},
		{"a question", []string{"what does EADDRINUSE mean?"}, AnswerPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SystemPromptFor(tt.messages); got != tt.want {
				t.Errorf("SystemPromptFor(%v) picked the wrong prompt", tt.messages)
			}
		})
	}
}
