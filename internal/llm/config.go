package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty disables LLM features.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL targets any
// OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with defaults and no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// envBindings maps LINGOLOOP_* variables onto Config fields.
var envBindings = []struct {
	name string
	set  func(*Config, string)
}{
	{"LINGOLOOP_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"LINGOLOOP_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"LINGOLOOP_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"LINGOLOOP_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"LINGOLOOP_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"LINGOLOOP_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"LINGOLOOP_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"LINGOLOOP_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"LINGOLOOP_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"LINGOLOOP_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
}

// ApplyEnv overlays LINGOLOOP_* environment variables onto c.
func (c *Config) ApplyEnv() {
	for _, b := range envBindings {
		if v := os.Getenv(b.name); v != "" {
			b.set(c, v)
		}
	}
}

// ConfigFromEnv returns DefaultConfig with environment overrides.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// DiscoverConfig probes the vendors' own API key variables and selects the
// first provider whose key is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "", ProviderMock:
		return nil
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "LINGOLOOP_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "LINGOLOOP_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "LINGOLOOP_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "LINGOLOOP_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
