package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/stemcoach/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		m := NewMockProvider()
		m.Respond = cfg.Mock.Respond
		// No retry: the mock either answers at once or never.
		return WithLogging(m, eventRepo), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// ErrNotConfigured is returned when no provider is selected by the
// environment or by an override.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProviderFromEnv resolves the configuration from the environment (see
// Resolve), applies overrides in order, validates it and builds the
// provider.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, overrides ...func(*Config)) (Provider, error) {
	cfg, ok := Resolve()
	if !ok {
		cfg = DefaultConfig()
		cfg.Provider = ""
	}
	for _, o := range overrides {
		o(&cfg)
	}
	if cfg.Provider == "" {
		return nil, ErrNotConfigured
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, eventRepo)
}
