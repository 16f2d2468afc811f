package main

import (
	"strings"
	"testing"
)

func TestCombineUserMessages(t *testing.T) {
	reset := func() {
		messages = nil
		queries = nil
		summary = false
	}

	t.Run("messages before queries", func(t *testing.T) {
		reset()
		messages = []string{"first", "second"}
		queries = []string{"third"}

		got := combineUserMessages()
		if len(got) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(got))
		}
		if got[0] != "first" || got[1] != "second" || got[2] != "third" {
			t.Errorf("wrong merge order: %v", got)
		}
	})

	t.Run("summary appends an instruction", func(t *testing.T) {
		reset()
		summary = true

		got := combineUserMessages()
		if len(got) != 1 || !strings.Contains(got[0], "Summarize") {
			t.Errorf("expected the summary instruction, got %v", got)
		}
	})

	t.Run("nothing set", func(t *testing.T) {
		reset()
		if got := combineUserMessages(); len(got) != 0 {
			t.Errorf("expected no messages, got %v", got)
		}
	})
}
