package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validators holds compiled schemas keyed by Schema.Name.
var validators sync.Map

// ValidateJSON checks raw against schema. A nil schema accepts anything.
// Any other failure is an InvalidOutput *Error carrying raw.
func ValidateJSON(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidOutput(raw, "invalid JSON: %w", err)
	}
	v, err := validator(schema)
	if err != nil {
		return invalidOutput(raw, "compile schema %q: %w", schema.Name, err)
	}
	if err := v.Validate(doc); err != nil {
		return invalidOutput(raw, "schema validation failed: %w", err)
	}
	return nil
}

func validator(schema *Schema) (*jsonschema.Schema, error) {
	if v, ok := validators.Load(schema.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// Definitions are Go literals (int, []string); round-trip them so the
	// compiler sees plain JSON values.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	url := "mem://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	v, _ := validators.LoadOrStore(schema.Name, compiled)
	return v.(*jsonschema.Schema), nil
}
