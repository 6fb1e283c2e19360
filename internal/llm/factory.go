package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lingoloop/internal/logger"
)

// NewProvider builds the configured provider wrapped as
// caller → timeout → retry → logging → base.
// recorder may be nil, in which case calls are only logged.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, recorder, log)
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}
