package capture

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		tmux string
		sty  string
		want string
	}{
		{"tmux session", "/tmp/tmux-1000/default,1234,0", "", "tmux"},
		{"screen session", "", "1234.pts-0.host", "screen"},
		{"tmux wins over screen", "/tmp/tmux-1000/default,1234,0", "1234.pts-0.host", "tmux"},
		{"no multiplexer", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TMUX", tt.tmux)
			t.Setenv("STY", tt.sty)

			c := Detect(100)
			if tt.want == "" {
				if c != nil {
					t.Errorf("expected no capturer, got %s", c.Name())
				}
				return
			}
			if c == nil || c.Name() != tt.want {
				t.Errorf("expected %s capturer, got %v", tt.want, c)
			}
		})
	}
}

func TestStdinCapturer(t *testing.T) {
	t.Run("reads piped text", func(t *testing.T) {
		c := &StdinCapturer{Reader: strings.NewReader("error: port in use\nexit status 1\n")}
		got, err := c.Capture(context.Background())
		if err != nil {
			t.Fatalf("Capture returned error: %v", err)
		}
		if !strings.Contains(got, "port in use") {
			t.Errorf("captured text = %q", got)
		}
	})

	t.Run("normalizes CRLF", func(t *testing.T) {
		c := &StdinCapturer{Reader: strings.NewReader("line one\r\nline two\r\n")}
		got, err := c.Capture(context.Background())
		if err != nil {
			t.Fatalf("Capture returned error: %v", err)
		}
		if strings.Contains(got, "\r") {
			t.Errorf("carriage returns must be folded, got %q", got)
		}
		if got != "line one\nline two\n" {
			t.Errorf("captured text = %q", got)
		}
	})

	t.Run("blank input is unavailable", func(t *testing.T) {
		c := &StdinCapturer{Reader: strings.NewReader("   \n  \n")}
		if _, err := c.Capture(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("nil reader is unavailable", func(t *testing.T) {
		c := &StdinCapturer{}
		if _, err := c.Capture(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}

// Only piped stdin is exact context; pane snapshots carry prompt and
// invocation lines that need post-processing.
func TestVerbatim(t *testing.T) {
	if !(&StdinCapturer{}).Verbatim() {
		t.Error("stdin must be verbatim")
	}
	if (&TmuxCapturer{}).Verbatim() {
		t.Error("tmux pane snapshots are not verbatim")
	}
	if (&ScreenCapturer{}).Verbatim() {
		t.Error("screen hardcopies are not verbatim")
	}
}
