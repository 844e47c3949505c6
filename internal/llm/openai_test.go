package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer answers every request with status and body. The returned
// func yields the last request body.
func chatServer(t *testing.T, status int, body any) (string, func() map[string]any) {
	t.Helper()
	var (
		mu   sync.Mutex
		last map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		json.Unmarshal(raw, &last)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1", func() map[string]any {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	url, last := chatServer(t, http.StatusOK, chatCompletion(`{"topic":"Stoichiometry","minutes":15}`, "stop"))
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: url})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a STEM study coach.",
		Messages:  []Message{{Role: RoleUser, Content: "Plan one chemistry block."}},
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"Stoichiometry","minutes":15}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)

	sent := last()
	msgs, _ := sent["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format, _ := sent["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIProvider_Failures(t *testing.T) {
	apiError := func(code string) map[string]any {
		return map[string]any{"error": map[string]any{"message": code, "type": code, "code": code}}
	}
	tests := []struct {
		name   string
		status int
		body   any
		want   Kind
	}{
		{"rate limit", http.StatusTooManyRequests, apiError("rate_limit_exceeded"), RateLimited},
		{"server error", http.StatusBadGateway, apiError("server_error"), Unavailable},
		{"unknown model", http.StatusNotFound, apiError("model_not_found"), Rejected},
		{"cut off", http.StatusOK, chatCompletion(`{"topic":`, "length"), Truncated},
		{"no choices", http.StatusOK, map[string]any{"id": "chatcmpl-2", "choices": []any{}}, InvalidOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, _ := chatServer(t, tt.status, tt.body)
			p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: url})
			require.NoError(t, err)

			_, err = p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "test"}},
				Schema:   testSchema(),
			})
			kind, ok := KindOf(err)
			require.True(t, ok, "error %v", err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"})
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())
	assert.Equal(t, "google/gemini-2.0-flash-exp", p.ModelID())

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "meta-llama/llama-3-8b"})
	assert.ErrorContains(t, err, "openrouter API key is required")
}

func TestOpenRouterProvider_UsesGateway(t *testing.T) {
	url, _ := chatServer(t, http.StatusOK, chatCompletion(`{"topic":"Limits","minutes":10}`, "stop"))
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "openai/gpt-4o-mini", BaseURL: url})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Plan one math block."}},
		Schema:   testSchema(),
	})
	require.NoError(t, err)
}
