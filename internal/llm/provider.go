package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates one completion. When req.Schema is set the returned
// Content has already been validated against it; failures are *Error.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Namer is implemented by providers that know their vendor name, e.g.
// "anthropic". The event log falls back to the model id otherwise.
type Namer interface {
	Name() string
}

// Request is a single-shot prompt: a system prompt, the conversation so far
// and an optional output schema.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the vendor into structured output. Nil asks for free
	// text, returned as raw bytes in Response.Content.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the vendor default

	// Purpose labels the call in the event log, e.g. "quiz-gen".
	Purpose string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema. Name doubles as the cache key for the
// compiled validator and as the vendor-side schema name, so it must be
// unique per Definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a completed generation.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // the model that actually served the call
	StopReason string // StopEnd or StopMaxTokens
}

const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// modelAliases maps short names accepted by --model to vendor model ids.
// Unknown names pass through unchanged.
var modelAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.0-pro",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// finish validates a vendor answer against the request schema and builds
// the Response. Output that fails validation after hitting MaxTokens is
// reported as Truncated rather than InvalidOutput.
func finish(provider string, req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := ValidateJSON(req.Schema, content); err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Provider = provider
			if stop == StopMaxTokens {
				e.Kind = Truncated
			}
		}
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
