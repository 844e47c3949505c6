package quizgen

import (
	"encoding/json"
	"fmt"
	"io"
)

// LoadQuiz decodes a quiz written elsewhere, for example by an agent, fills
// in missing question ids and runs the default validators.
func LoadQuiz(r io.Reader) (*Quiz, error) {
	var q Quiz
	dec := json.NewDecoder(r)
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	fillIDs(&q)
	if err := validate(&q, Input{}, DefaultValidators()); err != nil {
		return nil, err
	}
	return &q, nil
}
