package ai

import (
	"testing"

	"github.com/skyresth/outexplain/internal/config"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OLLAMA_MODEL"} {
		t.Setenv(name, "")
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("explicit openai", func(t *testing.T) {
		clearProviderEnv(t)
		cfg := config.DefaultConfig()
		cfg.Provider.Name = "openai"
		cfg.Provider.APIKey = "sk-test"

		p, err := NewProvider(cfg)
		if err != nil {
			t.Fatalf("NewProvider returned error: %v", err)
		}
		if p.Name() != "openai" {
			t.Errorf("provider name = %q", p.Name())
		}
	})

	t.Run("explicit anthropic without key", func(t *testing.T) {
		clearProviderEnv(t)
		cfg := config.DefaultConfig()
		cfg.Provider.Name = "anthropic"
		cfg.Provider.APIKeyEnv = ""

		if _, err := NewProvider(cfg); err == nil {
			t.Error("expected an error without an API key")
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		clearProviderEnv(t)
		cfg := config.DefaultConfig()
		cfg.Provider.Name = "cohere"

		if _, err := NewProvider(cfg); err == nil {
			t.Error("expected an error for an unknown provider")
		}
	})

	t.Run("auto-detect by credential", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

		cfg := config.DefaultConfig()
		cfg.Provider.Name = ""
		cfg.Provider.APIKeyEnv = ""

		p, err := NewProvider(cfg)
		if err != nil {
			t.Fatalf("NewProvider returned error: %v", err)
		}
		if p.Name() != "anthropic" {
			t.Errorf("expected anthropic, got %q", p.Name())
		}
	})

	t.Run("auto-detect ollama", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("OLLAMA_MODEL", "llama3")

		cfg := config.DefaultConfig()
		cfg.Provider.Name = ""

		p, err := NewProvider(cfg)
		if err != nil {
			t.Fatalf("NewProvider returned error: %v", err)
		}
		if p.Name() != "ollama" {
			t.Errorf("expected ollama, got %q", p.Name())
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		clearProviderEnv(t)
		cfg := config.DefaultConfig()
		cfg.Provider.Name = ""

		if _, err := NewProvider(cfg); err == nil {
			t.Error("expected an error when no provider can be detected")
		}
	})
}
