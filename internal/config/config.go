// Package config handles outexplain configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Limits bounds how much captured text ends up in an assembled context.
// Constructed once per invocation and passed by value into every component;
// components never read environment state themselves.
type Limits struct {
	// MaxCommands bounds the previous_commands length.
	MaxCommands int `yaml:"max_commands"`
	// MaxChars bounds per-field character truncation.
	MaxChars int `yaml:"max_chars"`
	// MaxHistory bounds how many history entries/lines are read before
	// sequence limiting is applied.
	MaxHistory int `yaml:"max_history"`
}

// Config represents the complete application configuration
type Config struct {
	// Version for config migration
	Version int `yaml:"version"`

	// Provider configuration
	Provider ProviderConfig `yaml:"provider"`

	// Model parameters
	Model ModelConfig `yaml:"model"`

	// Context size limits
	Limits Limits `yaml:"limits"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// ProviderConfig holds AI provider settings
type ProviderConfig struct {
	Name     string `yaml:"name"`     // openai, anthropic, ollama
	Endpoint string `yaml:"endpoint"` // API endpoint

	// Credential references (prefer api_key_env over api_key for security)
	APIKey    string `yaml:"api_key,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// ModelConfig holds model-specific parameters
type ModelConfig struct {
	Name           string  `yaml:"name"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// LoggingConfig holds log file settings
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".outexplain")

	return &Config{
		Version: 1,

		Provider: ProviderConfig{
			Name:      "",
			Endpoint:  "",
			APIKeyEnv: "OPENAI_API_KEY",
		},

		Model: ModelConfig{
			Name:           "",
			MaxTokens:      1200,
			Temperature:    0.2,
			TimeoutSeconds: 60,
		},

		Limits: Limits{
			MaxCommands: 3,
			MaxChars:    10000,
			MaxHistory:  5000,
		},

		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "outexplain.log"),
		},
	}
}

// UserConfigPath returns the user config file location.
func UserConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "outexplain", "config.yaml")
}

// Load reads the configuration once at startup: defaults, then the user
// config file when present, then environment overrides. A missing config
// file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = UserConfigPath()
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	applyEnvOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(c *Config) {
	if provider := os.Getenv("OUTEXPLAIN_PROVIDER"); provider != "" {
		c.Provider.Name = provider
	}
	if model := os.Getenv("OUTEXPLAIN_MODEL"); model != "" {
		c.Model.Name = model
	}
	if endpoint := os.Getenv("OUTEXPLAIN_ENDPOINT"); endpoint != "" {
		c.Provider.Endpoint = endpoint
	}
	if level := os.Getenv("OUTEXPLAIN_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	if v := envInt("OUTEXPLAIN_MAX_COMMANDS"); v > 0 {
		c.Limits.MaxCommands = v
	}
	if v := envInt("OUTEXPLAIN_MAX_CHARS"); v > 0 {
		c.Limits.MaxChars = v
	}
	if v := envInt("OUTEXPLAIN_MAX_HISTORY"); v > 0 {
		c.Limits.MaxHistory = v
	}
}

func envInt(name string) int {
	raw := os.Getenv(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func validate(c *Config) error {
	if c.Limits.MaxCommands <= 0 {
		return fmt.Errorf("limits.max_commands must be positive, got %d", c.Limits.MaxCommands)
	}
	if c.Limits.MaxChars <= 0 {
		return fmt.Errorf("limits.max_chars must be positive, got %d", c.Limits.MaxChars)
	}
	if c.Limits.MaxHistory <= 0 {
		return fmt.Errorf("limits.max_history must be positive, got %d", c.Limits.MaxHistory)
	}
	if c.Model.TimeoutSeconds <= 0 {
		return fmt.Errorf("model.timeout_seconds must be positive, got %d", c.Model.TimeoutSeconds)
	}
	return nil
}

// Save writes the configuration to the user config file
func (c *Config) Save() error {
	path := UserConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// GetAPIKey resolves the API key for the configured provider
func (c *Config) GetAPIKey() string {
	if c.Provider.APIKey != "" {
		return c.Provider.APIKey
	}
	if c.Provider.APIKeyEnv != "" {
		if key := os.Getenv(c.Provider.APIKeyEnv); key != "" {
			return key
		}
	}

	switch c.Provider.Name {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}

// EnsureDirs creates directories the application writes to
func (c *Config) EnsureDirs() error {
	dirs := []string{
		filepath.Dir(UserConfigPath()),
		filepath.Dir(c.Logging.File),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
