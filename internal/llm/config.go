package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Mock       MockConfig
	Retry      RetryConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Optional. Override for proxies and tests.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// MockConfig configures the offline "mock" provider.
type MockConfig struct {
	// Respond answers requests. Without it every call fails.
	Respond func(Request) MockResponse
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
			Timeout:     30 * time.Second,
		},
	}
}

// providerOrder is the discovery order when keys for several providers are
// present.
var providerOrder = []string{"gemini", "openai", "anthropic", "openrouter"}

// fields points at the key, model and base URL settings of the named
// provider. base is nil for providers without a base URL override.
func (c *Config) fields(provider string) (key, model, base *string, ok bool) {
	switch provider {
	case "anthropic":
		return &c.Anthropic.APIKey, &c.Anthropic.Model, nil, true
	case "openai":
		return &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL, true
	case "gemini":
		return &c.Gemini.APIKey, &c.Gemini.Model, &c.Gemini.BaseURL, true
	case "openrouter":
		return &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL, true
	}
	return nil, nil, nil, false
}

// keyEnv is the STEMCOACH_ variable holding the provider's API key.
func keyEnv(provider string) string {
	return "STEMCOACH_" + strings.ToUpper(provider) + "_API_KEY"
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv overlays STEMCOACH_LLM_PROVIDER and the per-provider
// STEMCOACH_<PROVIDER>_{API_KEY,MODEL,BASE_URL} variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "STEMCOACH_LLM_PROVIDER")
	for _, name := range providerOrder {
		key, model, base, _ := cfg.fields(name)
		prefix := "STEMCOACH_" + strings.ToUpper(name) + "_"
		setFromEnv(key, prefix+"API_KEY")
		setFromEnv(model, prefix+"MODEL")
		if base != nil {
			setFromEnv(base, prefix+"BASE_URL")
		}
	}
	return cfg
}

// DiscoverConfig looks for the vendors' own key variables (GEMINI_API_KEY,
// OPENAI_API_KEY, ...) in providerOrder and selects the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, name := range providerOrder {
		v := os.Getenv(strings.ToUpper(name) + "_API_KEY")
		if v == "" {
			continue
		}
		key, _, _, _ := cfg.fields(name)
		*key = v
		cfg.Provider = name
		return cfg, true
	}
	return Config{}, false
}

// Resolve returns the configuration to use: STEMCOACH_ variables when a
// provider or provider key is set there, otherwise the first standard
// provider key found by DiscoverConfig. ok is false when nothing is
// configured.
func Resolve() (cfg Config, ok bool) {
	explicit := os.Getenv("STEMCOACH_LLM_PROVIDER") != ""
	keyed := ""
	for _, name := range providerOrder {
		if os.Getenv(keyEnv(name)) != "" {
			keyed = name
			break
		}
	}
	if !explicit && keyed == "" {
		return DiscoverConfig()
	}
	cfg = ConfigFromEnv()
	if !explicit {
		cfg.Provider = keyed
	}
	return cfg, true
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	if _, m, _, ok := c.fields(c.Provider); ok {
		*m = model
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	key, _, _, ok := c.fields(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("%s is required for the %s provider", keyEnv(c.Provider), c.Provider)
	}
	return nil
}
