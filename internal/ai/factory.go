// Package ai provides factory functions for creating LLM providers
package ai

import (
	"fmt"
	"os"

	"github.com/skyresth/outexplain/internal/config"
)

// NewProvider creates a provider from configuration. An empty provider
// name auto-selects by credential presence: OpenAI when OPENAI_API_KEY is
// set, Anthropic when ANTHROPIC_API_KEY is set, Ollama when OLLAMA_MODEL
// names a local model.
func NewProvider(cfg *config.Config) (Provider, error) {
	name := cfg.Provider.Name
	if name == "" {
		name = autoDetect()
	}

	switch name {
	case "openai":
		return NewOpenAIProvider(cfg.GetAPIKey(), cfg.Provider.Endpoint, cfg.Model.Name, cfg.Model)
	case "anthropic":
		return NewAnthropicProvider(cfg.GetAPIKey(), cfg.Provider.Endpoint, cfg.Model.Name, cfg.Model)
	case "ollama":
		return NewOllamaProvider(cfg.Provider.Endpoint, cfg.Model.Name, cfg.Model)
	case "":
		return nil, fmt.Errorf("no model configured: set OPENAI_API_KEY or ANTHROPIC_API_KEY, or provide an OLLAMA_MODEL")
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}

func autoDetect() string {
	if os.Getenv("OPENAI_API_KEY") != "" {
		return "openai"
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return "anthropic"
	}
	if os.Getenv("OLLAMA_MODEL") != "" {
		return "ollama"
	}
	return ""
}

// AvailableProviders returns the provider names the factory accepts.
func AvailableProviders() []string {
	return []string{"openai", "anthropic", "ollama"}
}
