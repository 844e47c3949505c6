package tools

import (
	"github.com/abhisek/stemcoach/internal/llm"
	"github.com/abhisek/stemcoach/internal/topicpack"
)

func subjectEnum() []any {
	var out []any
	for _, s := range topicpack.AllSubjects() {
		out = append(out, string(s))
	}
	return out
}

var scoreQuizInputSchema = &llm.Schema{
	Name:        "score-quiz-input",
	Description: "Quiz answers to score",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answers": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionId":    map[string]any{"type": "string"},
						"selectedIndex": map[string]any{"type": "integer"},
						"correctIndex":  map[string]any{"type": "integer"},
					},
					"required":             []any{"questionId", "selectedIndex", "correctIndex"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"answers"},
		"additionalProperties": false,
	},
}

var scoreQuizOutputSchema = &llm.Schema{
	Name:        "score-quiz-output",
	Description: "Quiz score",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"total":    map[string]any{"type": "integer", "minimum": 0},
			"correct":  map[string]any{"type": "integer", "minimum": 0},
			"accuracy": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"incorrectQuestionIds": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"total", "correct", "accuracy", "incorrectQuestionIds"},
	},
}

var studyPlanInputSchema = &llm.Schema{
	Name:        "study-plan-input",
	Description: "Subject, optional focus topics and time available",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{"type": "string", "minLength": 1},
			"focusTopics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"days":         map[string]any{"type": "integer", "minimum": 1, "maximum": 365},
			"dailyMinutes": map[string]any{"type": "integer", "minimum": 1, "maximum": 1440},
		},
		"required":             []any{"subject", "days", "dailyMinutes"},
		"additionalProperties": false,
	},
}

var studyPlanOutputSchema = &llm.Schema{
	Name:        "study-plan-output",
	Description: "Multi-day study plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"goal":         map[string]any{"type": "string"},
			"days":         map[string]any{"type": "integer"},
			"dailyMinutes": map[string]any{"type": "integer"},
			"plan": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day":   map[string]any{"type": "integer", "minimum": 1},
						"focus": map[string]any{"type": "string"},
						"tasks": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 3,
							"maxItems": 3,
						},
					},
					"required": []any{"day", "focus", "tasks"},
				},
			},
		},
		"required": []any{"goal", "days", "dailyMinutes", "plan"},
	},
}

var progressSignalInputSchema = &llm.Schema{
	Name:        "progress-signal-input",
	Description: "Recent accuracy, streak and weekly study minutes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recentAccuracy":         map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"streakDays":             map[string]any{"type": "integer", "minimum": 0},
			"minutesStudiedThisWeek": map[string]any{"type": "integer", "minimum": 0},
		},
		"required":             []any{"recentAccuracy", "streakDays", "minutesStudiedThisWeek"},
		"additionalProperties": false,
	},
}

var progressSignalOutputSchema = &llm.Schema{
	Name:        "progress-signal-output",
	Description: "Mastery level, next target and coaching tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"masteryLevel": map[string]any{
				"type": "string",
				"enum": []any{string(Starter), string(Steady), string(Accelerating), string(ExamReady)},
			},
			"nextTarget":  map[string]any{"type": "string"},
			"coachingTip": map[string]any{"type": "string"},
		},
		"required": []any{"masteryLevel", "nextTarget", "coachingTip"},
	},
}

var topicPackInputSchema = &llm.Schema{
	Name:        "topic-pack-input",
	Description: "STEM subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{"type": "string", "enum": subjectEnum()},
		},
		"required":             []any{"subject"},
		"additionalProperties": false,
	},
}

var topicPackOutputSchema = &llm.Schema{
	Name:        "topic-pack-output",
	Description: "Curriculum topics for a subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{"type": "string"},
			"topics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"subject", "topics"},
	},
}
