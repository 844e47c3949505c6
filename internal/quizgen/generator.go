// Package quizgen produces and validates multiple-choice quizzes.
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/stemcoach/internal/llm"
)

// Generator produces quizzes.
type Generator interface {
	// Generate returns a quiz that passed every configured validator.
	Generate(ctx context.Context, input Input) (*Quiz, error)
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the provider for a quiz on input.Topic.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Quiz, error) {
	if input.Topic == "" {
		return nil, fmt.Errorf("generate quiz: topic is required")
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		Purpose:     "quiz-gen",
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var q Quiz
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	fillIDs(&q)

	if err := validate(&q, input, g.config.Validators); err != nil {
		return nil, err
	}
	return &q, nil
}

// fillIDs gives every question without an id a fresh one.
func fillIDs(q *Quiz) {
	for i := range q.Questions {
		if q.Questions[i].ID == "" {
			q.Questions[i].ID = uuid.NewString()
		}
	}
}

func validate(q *Quiz, input Input, validators []Validator) error {
	for _, v := range validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}
