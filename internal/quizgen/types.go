package quizgen

import (
	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/studystats"
	"github.com/abhisek/stemcoach/internal/topicpack"
)

// Quiz is a multiple-choice quiz on one topic.
type Quiz struct {
	Title     string     `json:"title"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// Question is one multiple-choice question. CorrectIndex is 0-based into
// Options.
type Question struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Input holds the context needed to generate a quiz.
type Input struct {
	Subject    topicpack.Subject
	Topic      string
	SkillLevel profile.SkillLevel

	// Count is the number of questions wanted. Zero means DefaultCount.
	Count int

	// RecentMistakes are the learner's latest wrong answers, newest
	// first. Those on the same topic are quoted in the prompt.
	RecentMistakes []studystats.Mistake
}

const (
	DefaultCount = 3
	MaxCount     = 10
	MinOptions   = 2
	MaxOptions   = 6
)

func (in Input) count() int {
	switch {
	case in.Count <= 0:
		return DefaultCount
	case in.Count > MaxCount:
		return MaxCount
	}
	return in.Count
}
