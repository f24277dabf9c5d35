package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → timeout → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderDeepSeek:
		base, err = NewDeepSeekProvider(cfg.DeepSeek)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}

// NewProviderFromEnv resolves configuration from LINGUA_* variables and,
// when those name no usable key, from the vendors' standard variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo, log)
}
