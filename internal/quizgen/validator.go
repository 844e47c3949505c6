package quizgen

import "fmt"

// Validator checks a quiz for correctness. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(q *Quiz, input Input) *ValidationError
}

// ValidationError describes why a quiz failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that required text is present and within
// length limits, and that the question count matches the request.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz, input Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}
	if q.Title == "" {
		return fail("title is empty")
	}
	if q.Topic == "" {
		return fail("topic is empty")
	}
	if len(q.Questions) == 0 {
		return fail("quiz has no questions")
	}
	if input.Count > 0 && len(q.Questions) != input.count() {
		return fail("expected %d questions, got %d", input.count(), len(q.Questions))
	}
	for i, qq := range q.Questions {
		if qq.Question == "" {
			return fail("question %d text is empty", i+1)
		}
		if len(qq.Question) > 500 {
			return fail("question %d exceeds 500 characters", i+1)
		}
		if len(qq.Explanation) > 1000 {
			return fail("question %d explanation exceeds 1000 characters", i+1)
		}
	}
	return nil
}

// OptionsValidator checks option counts and that every correct index
// points at an option.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Quiz, _ Input) *ValidationError {
	for i, qq := range q.Questions {
		n := len(qq.Options)
		if n < MinOptions || n > MaxOptions {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has %d options, want %d to %d", i+1, n, MinOptions, MaxOptions),
			}
		}
		for j, opt := range qq.Options {
			if opt == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d option %d is empty", i+1, j+1),
				}
			}
		}
		if qq.CorrectIndex < 0 || qq.CorrectIndex >= n {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d correct index %d out of range", i+1, qq.CorrectIndex),
			}
		}
	}
	return nil
}

// UniqueIDValidator rejects quizzes where two questions share an id.
type UniqueIDValidator struct{}

func (v *UniqueIDValidator) Name() string { return "unique-id" }

func (v *UniqueIDValidator) Validate(q *Quiz, _ Input) *ValidationError {
	seen := make(map[string]bool, len(q.Questions))
	for _, qq := range q.Questions {
		if seen[qq.ID] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate question id %q", qq.ID),
			}
		}
		seen[qq.ID] = true
	}
	return nil
}
