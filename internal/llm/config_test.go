package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var providerEnv = []string{
	"STEMCOACH_LLM_PROVIDER",
	"STEMCOACH_ANTHROPIC_API_KEY", "STEMCOACH_ANTHROPIC_MODEL",
	"STEMCOACH_OPENAI_API_KEY", "STEMCOACH_OPENAI_MODEL", "STEMCOACH_OPENAI_BASE_URL",
	"STEMCOACH_GEMINI_API_KEY", "STEMCOACH_GEMINI_MODEL", "STEMCOACH_GEMINI_BASE_URL",
	"STEMCOACH_OPENROUTER_API_KEY", "STEMCOACH_OPENROUTER_MODEL", "STEMCOACH_OPENROUTER_BASE_URL",
	"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range providerEnv {
		t.Setenv(k, "")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		ok       bool
		provider string
	}{
		{name: "nothing configured", ok: false},
		{
			name:     "standard key discovered",
			env:      map[string]string{"OPENAI_API_KEY": "sk-1"},
			ok:       true,
			provider: "openai",
		},
		{
			name:     "gemini wins discovery",
			env:      map[string]string{"OPENAI_API_KEY": "sk-1", "GEMINI_API_KEY": "g-1"},
			ok:       true,
			provider: "gemini",
		},
		{
			name:     "prefixed key picks its provider",
			env:      map[string]string{"STEMCOACH_OPENROUTER_API_KEY": "or-1", "GEMINI_API_KEY": "g-1"},
			ok:       true,
			provider: "openrouter",
		},
		{
			name:     "explicit provider",
			env:      map[string]string{"STEMCOACH_LLM_PROVIDER": "mock"},
			ok:       true,
			provider: "mock",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearProviderEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, ok := Resolve()
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && cfg.Provider != tt.provider {
				t.Fatalf("provider = %q, want %q", cfg.Provider, tt.provider)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("STEMCOACH_LLM_PROVIDER", "openai")
	t.Setenv("STEMCOACH_OPENAI_API_KEY", "sk-test")
	t.Setenv("STEMCOACH_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("STEMCOACH_OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.OpenAI.Model != "gpt-4.1-mini" || cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("unexpected openai config: %+v", cfg.OpenAI)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("retry defaults lost: %+v", cfg.Retry)
	}
}

func TestConfigFromEnv_BaseURLs(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("STEMCOACH_GEMINI_BASE_URL", "http://localhost:9000")
	t.Setenv("STEMCOACH_OPENROUTER_BASE_URL", "http://localhost:9001/api/v1")

	cfg := ConfigFromEnv()
	if cfg.Gemini.BaseURL != "http://localhost:9000" || cfg.OpenRouter.BaseURL != "http://localhost:9001/api/v1" {
		t.Fatalf("base URLs = %q / %q", cfg.Gemini.BaseURL, cfg.OpenRouter.BaseURL)
	}
	if cfg.Retry.Timeout != 30*time.Second {
		t.Fatalf("retry timeout = %v, want 30s", cfg.Retry.Timeout)
	}
}

func TestConfig_ValidateNamesKeyVariable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "gemini"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "STEMCOACH_GEMINI_API_KEY") {
		t.Fatalf("err = %v, want mention of STEMCOACH_GEMINI_API_KEY", err)
	}
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "gemini"
	cfg.SetModel("gemini-2.5-pro")
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("anthropic model changed to %q", cfg.Anthropic.Model)
	}

	cfg.SetModel("")
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("empty model overrode gemini model: %q", cfg.Gemini.Model)
	}
}

func TestNewProvider(t *testing.T) {
	repo := openTestRepo(t)

	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q, want mock", p.ModelID())
	}

	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or-test"
	p, err = NewProvider(context.Background(), cfg, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Fatalf("model = %q", p.ModelID())
	}
	if name := providerName(p); name != "openrouter" {
		t.Fatalf("provider name through retry and logging = %q, want openrouter", name)
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "carrier-pigeon"}, repo); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProviderFromEnv(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	t.Run("nothing configured", func(t *testing.T) {
		clearProviderEnv(t)
		if _, err := NewProviderFromEnv(ctx, repo); !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("err = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("override selects provider", func(t *testing.T) {
		clearProviderEnv(t)
		p, err := NewProviderFromEnv(ctx, repo, func(c *Config) { c.Provider = "mock" })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "mock" {
			t.Fatalf("model = %q, want mock", p.ModelID())
		}
	})

	t.Run("missing key fails validation", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("STEMCOACH_LLM_PROVIDER", "anthropic")
		if _, err := NewProviderFromEnv(ctx, repo); err == nil {
			t.Fatal("expected a validation error")
		}
	})

	t.Run("discovered key with model override", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		p, err := NewProviderFromEnv(ctx, repo, func(c *Config) { c.SetModel("gpt-4.1-mini") })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gpt-4.1-mini" {
			t.Fatalf("model = %q", p.ModelID())
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "carrier-pigeon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
