package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/stemcoach/internal/llm"
)

// ErrUnknownTool is returned by Call for a name that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// InputError reports tool input that failed decoding or schema validation.
type InputError struct {
	Tool string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input for %s: %v", e.Tool, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Tool describes one callable tool.
type Tool struct {
	Name        string
	Description string
	Input       *llm.Schema
	Output      *llm.Schema

	call func(ctx context.Context, input json.RawMessage) (any, error)
}

// Registry is an ordered set of tools.
type Registry struct {
	tools []Tool
	index map[string]int
}

// NewRegistry returns a registry holding the four study tools.
func NewRegistry() *Registry {
	r := &Registry{index: make(map[string]int)}

	r.Register(newTool("scoreQuiz",
		"Score quiz answers and return accuracy with a list of incorrect question IDs.",
		scoreQuizInputSchema, scoreQuizOutputSchema,
		func(_ context.Context, in ScoreQuizInput) (QuizScore, error) {
			return ScoreQuiz(in.Answers), nil
		}))

	r.Register(newTool("buildStudyPlan",
		"Create a multi-day STEM study plan based on subject, topics, and time available.",
		studyPlanInputSchema, studyPlanOutputSchema,
		func(_ context.Context, in StudyPlanInput) (StudyPlan, error) {
			return BuildStudyPlan(in), nil
		}))

	r.Register(newTool("buildProgressSignal",
		"Generate a mastery signal and coaching tip from recent accuracy and study streaks.",
		progressSignalInputSchema, progressSignalOutputSchema,
		func(_ context.Context, in ProgressSignalInput) (ProgressSignal, error) {
			return BuildProgressSignal(in), nil
		}))

	r.Register(newTool("getStemTopicPack",
		"Fetch a STEM topic pack for Physics, Math, Chemistry, or Computer Science.",
		topicPackInputSchema, topicPackOutputSchema,
		func(_ context.Context, in TopicPackInput) (TopicPack, error) {
			return GetStemTopicPack(in.Subject), nil
		}))

	return r
}

func newTool[In, Out any](name, desc string, in, out *llm.Schema, fn func(context.Context, In) (Out, error)) Tool {
	return Tool{
		Name:        name,
		Description: desc,
		Input:       in,
		Output:      out,
		call: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var v In
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, &InputError{Tool: name, Err: err}
			}
			return fn(ctx, v)
		},
	}
}

// Register adds t, replacing any tool with the same name.
func (r *Registry) Register(t Tool) {
	if i, ok := r.index[t.Name]; ok {
		r.tools[i] = t
		return
	}
	r.index[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	return append([]Tool(nil), r.tools...)
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Call validates input against the tool's input schema, runs the tool and
// validates its result against the output schema.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}

	if err := llm.ValidateJSON(t.Input, input); err != nil {
		return nil, &InputError{Tool: name, Err: err}
	}

	result, err := t.call(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}

	out, err := encode(result)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", name, err)
	}
	if err := llm.ValidateJSON(t.Output, out); err != nil {
		return nil, fmt.Errorf("%s produced invalid output: %w", name, err)
	}
	return out, nil
}

// encode marshals v without HTML escaping so topic names like
// "Units & Measurements" reach the agent verbatim.
func encode(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
