package quizgen

import "github.com/abhisek/stemcoach/internal/llm"

// QuizSchema defines the JSON schema for LLM quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-set",
	Description: "A short multiple-choice quiz on one STEM topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short quiz title",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The topic the quiz covers",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "A short identifier unique within the quiz, e.g. q1",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text in plain text",
						},
						"options": map[string]any{
							"type":        "array",
							"minItems":    MinOptions,
							"maxItems":    MaxOptions,
							"items":       map[string]any{"type": "string"},
							"description": "Answer options, exactly one of which is correct",
						},
						"correctIndex": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "0-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, in one or two sentences",
						},
					},
					"required":             []any{"id", "question", "options", "correctIndex", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "topic", "questions"},
		"additionalProperties": false,
	},
}
