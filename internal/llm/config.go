package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderDeepSeek   = "deepseek"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend, one of the Provider* constants.
	Provider string

	DeepSeek   DeepSeekConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries. Zero disables it.
	Timeout time.Duration
}

// DeepSeekConfig configures the DeepSeek OpenAI-compatible endpoint.
type DeepSeekConfig struct {
	APIKey  string
	Model   string // Default: "deepseek-chat"
	BaseURL string // Default: "https://api.deepseek.com/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the configuration used when nothing is set.
// DeepSeek is the default backend; the tutor was first built against it.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderDeepSeek,
		DeepSeek:   DeepSeekConfig{Model: "deepseek-chat"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from LINGUA_* variables on top of the
// defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "LINGUA_LLM_PROVIDER")

	setFromEnv(&cfg.DeepSeek.APIKey, "LINGUA_DEEPSEEK_API_KEY")
	setFromEnv(&cfg.DeepSeek.Model, "LINGUA_DEEPSEEK_MODEL")
	setFromEnv(&cfg.DeepSeek.BaseURL, "LINGUA_DEEPSEEK_BASE_URL")

	setFromEnv(&cfg.OpenAI.APIKey, "LINGUA_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "LINGUA_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "LINGUA_OPENAI_BASE_URL")

	setFromEnv(&cfg.Anthropic.APIKey, "LINGUA_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "LINGUA_ANTHROPIC_MODEL")

	setFromEnv(&cfg.Gemini.APIKey, "LINGUA_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "LINGUA_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "LINGUA_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "LINGUA_OPENROUTER_MODEL")

	if d, err := time.ParseDuration(os.Getenv("LINGUA_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables in order
// DeepSeek, Gemini, OpenAI, Anthropic, OpenRouter and returns a Config for
// the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("DEEPSEEK_API_KEY"); k != "" {
		cfg.Provider = ProviderDeepSeek
		cfg.DeepSeek.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, envName string
	switch c.Provider {
	case ProviderDeepSeek:
		key, envName = c.DeepSeek.APIKey, "LINGUA_DEEPSEEK_API_KEY"
	case ProviderOpenAI:
		key, envName = c.OpenAI.APIKey, "LINGUA_OPENAI_API_KEY"
	case ProviderAnthropic:
		key, envName = c.Anthropic.APIKey, "LINGUA_ANTHROPIC_API_KEY"
	case ProviderGemini:
		key, envName = c.Gemini.APIKey, "LINGUA_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, envName = c.OpenRouter.APIKey, "LINGUA_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envName, c.Provider)
	}
	return nil
}
