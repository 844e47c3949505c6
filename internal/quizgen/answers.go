package quizgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/studystats"
	"github.com/abhisek/stemcoach/internal/tools"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Answers pairs each question with the learner's choice, in quiz order.
// Questions missing from selected get SelectedIndex -1.
func (q Quiz) Answers(selected map[string]int) []tools.QuizAnswer {
	out := make([]tools.QuizAnswer, len(q.Questions))
	for i, qq := range q.Questions {
		idx, ok := selected[qq.ID]
		if !ok {
			idx = -1
		}
		out[i] = tools.QuizAnswer{QuestionID: qq.ID, SelectedIndex: idx, CorrectIndex: qq.CorrectIndex}
	}
	return out
}

func answered(selected map[string]int, id string) (int, bool) {
	idx, ok := selected[id]
	return idx, ok && idx >= 0
}

func optionText(opts []string, i int, fallback string) string {
	if i < 0 || i >= len(opts) {
		return fallback
	}
	return opts[i]
}

// BuildMistakes returns one mistake per answered but wrong question.
// Skipped questions are not mistakes.
func BuildMistakes(q Quiz, selected map[string]int, now time.Time) []studystats.Mistake {
	ts := now.UTC().Format(timestampLayout)
	var out []studystats.Mistake
	for _, qq := range q.Questions {
		idx, ok := answered(selected, qq.ID)
		if !ok || idx == qq.CorrectIndex {
			continue
		}
		out = append(out, studystats.Mistake{
			ID:             qq.ID,
			Topic:          q.Topic,
			Question:       qq.Question,
			CorrectAnswer:  optionText(qq.Options, qq.CorrectIndex, "Correct answer"),
			SelectedAnswer: optionText(qq.Options, idx, "No answer"),
			Timestamp:      ts,
		})
	}
	return out
}

// ReviewRequest is the follow-up message asking the coach to walk through
// the wrong answers.
func ReviewRequest(q Quiz, selected map[string]int) string {
	var details []string
	for _, qq := range q.Questions {
		idx, ok := answered(selected, qq.ID)
		if !ok || idx == qq.CorrectIndex {
			continue
		}
		details = append(details, fmt.Sprintf("Q: %s | My answer: %s | Correct: %s",
			qq.Question,
			optionText(qq.Options, idx, "No answer"),
			optionText(qq.Options, qq.CorrectIndex, "Correct answer")))
	}
	if len(details) == 0 {
		return fmt.Sprintf("I got everything right on the %s quiz. Give me deeper explanations for each question.", q.Topic)
	}
	return fmt.Sprintf("Review my wrong answers for the %s quiz with detailed explanations. %s",
		q.Topic, strings.Join(details, " || "))
}

// LessonRequest is the follow-up message asking for a lesson and a new
// quiz on topic.
func LessonRequest(topic string, level profile.SkillLevel) string {
	if level == "" {
		level = profile.Intermediate
	}
	return fmt.Sprintf("Give me a short lesson card on %s at a %s level, then a 3-question quiz.", topic, level)
}
