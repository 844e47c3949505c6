package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/stemcoach/internal/studystats"
)

const systemPrompt = `You are a STEM study coach writing short practice quizzes for students on an engineering or science track.

Rules:
- Write multiple-choice questions on the given topic at the given skill level.
- Use plain text. Write math inline with standard ASCII operators (^ for powers, / for division, sqrt() for roots). No LaTeX.
- Each question has between 2 and 6 options and exactly one correct option. Prefer 4 options.
- Distractors should reflect common misconceptions, not random values.
- correctIndex is the 0-based position of the correct option.
- Give every question a short unique id such as q1, q2.
- The explanation states in one or two sentences why the correct option is right.
- When recent mistakes are listed, include at least one question that revisits the same idea from a different angle.`

// buildUserMessage constructs the user message from the input and config
// limits.
func buildUserMessage(input Input, cfg Config) string {
	level := string(input.SkillLevel)
	if level == "" {
		level = "Intermediate"
	}

	var b strings.Builder
	if input.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	}
	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Skill level: %s\n", level)
	fmt.Fprintf(&b, "Questions: %d\n", input.count())

	b.WriteString("\nRecent mistakes on this topic:\n")
	b.WriteString(buildMistakes(input.Topic, input.RecentMistakes, cfg.MaxRecentMistakes))
	return b.String()
}

// buildMistakes formats the newest mistakes on topic, respecting the max
// limit. Returns "None" when there are none.
func buildMistakes(topic string, mistakes []studystats.Mistake, max int) string {
	var b strings.Builder
	n := 0
	for _, m := range mistakes {
		if !strings.EqualFold(m.Topic, topic) {
			continue
		}
		if max > 0 && n == max {
			break
		}
		n++
		fmt.Fprintf(&b, "%d. %s (answered %q, correct was %q)\n", n, m.Question, m.SelectedAnswer, m.CorrectAnswer)
	}
	if n == 0 {
		return "None"
	}
	return strings.TrimRight(b.String(), "\n")
}
