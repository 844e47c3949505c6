package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated quiz; the first failure
	// stops the pipeline.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxRecentMistakes caps how many past mistakes are quoted in the
	// prompt.
	MaxRecentMistakes int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators:        DefaultValidators(),
		MaxTokens:         2048,
		Temperature:       0.7,
		MaxRecentMistakes: 5,
	}
}

// DefaultValidators is the validator chain applied to generated and
// loaded quizzes alike.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&OptionsValidator{},
		&UniqueIDValidator{},
	}
}
