package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "study-block",
		Description: "A planned study block",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic":   map[string]any{"type": "string"},
				"minutes": map[string]any{"type": "integer", "minimum": 0},
				"subject": map[string]any{"type": "string", "enum": []any{"Physics", "Math", "Chemistry"}},
			},
			"required": []any{"topic", "minutes"},
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"topic":"Kinematics","minutes":25,"subject":"Physics"}`, true},
		{"optional omitted", `{"topic":"Titration","minutes":40}`, true},
		{"missing required", `{"topic":"Stoichiometry"}`, false},
		{"wrong type", `{"topic":"Optics","minutes":"ten"}`, false},
		{"negative minutes", `{"topic":"Optics","minutes":-5}`, false},
		{"subject outside enum", `{"topic":"Recursion","minutes":30,"subject":"Biology"}`, false},
		{"malformed", `{not json}`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(testSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, InvalidOutput, e.Kind)
			assert.Equal(t, tt.raw, string(e.Content))
		})
	}
}

func TestValidateJSON_NilSchemaAcceptsAnything(t *testing.T) {
	assert.NoError(t, ValidateJSON(nil, json.RawMessage(`free text, not JSON`)))
}

func TestValidateJSON_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name: "quiz-review",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"quiz": map[string]any{
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string"}},
					"required":   []any{"name"},
				},
				"answers": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			},
			"required": []any{"quiz", "answers"},
		},
	}

	assert.NoError(t, ValidateJSON(schema, json.RawMessage(`{"quiz":{"name":"Thermo check"},"answers":[0,2,1]}`)))
	assert.Error(t, ValidateJSON(schema, json.RawMessage(`{"quiz":{"name":"Thermo check"},"answers":["b","c"]}`)))
	assert.Error(t, ValidateJSON(schema, json.RawMessage(`{"quiz":{},"answers":[]}`)))
}

func TestValidateJSON_GoTypedDefinition(t *testing.T) {
	schema := &Schema{
		Name: "typed-counts",
		Definition: map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "integer", "maximum": 100},
			"minItems": 1,
		},
	}
	assert.NoError(t, ValidateJSON(schema, json.RawMessage(`[10, 100]`)))
	assert.Error(t, ValidateJSON(schema, json.RawMessage(`[]`)))
	assert.Error(t, ValidateJSON(schema, json.RawMessage(`[101]`)))
}
