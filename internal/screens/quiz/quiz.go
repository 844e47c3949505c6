// Package quiz runs a multiple-choice quiz: topic selection, generation,
// answering and the scored review.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemcoach/internal/coach"
	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/quizgen"
	"github.com/abhisek/stemcoach/internal/router"
	"github.com/abhisek/stemcoach/internal/screen"
	"github.com/abhisek/stemcoach/internal/studystats"
	"github.com/abhisek/stemcoach/internal/topicpack"
	"github.com/abhisek/stemcoach/internal/ui/components"
	"github.com/abhisek/stemcoach/internal/ui/layout"
	"github.com/abhisek/stemcoach/internal/ui/theme"
)

type state int

const (
	stateLoading state = iota
	stateSubject
	stateTopic
	stateGenerating
	stateAnswering
	stateSubmitting
	stateResults
	stateError
)

// reviewTopics is how many weak topics are offered ahead of the pack.
const reviewTopics = 3

// errNoProvider is shown when quizzes cannot be generated.
var errNoProvider = errors.New("no LLM provider configured: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")

type contextLoadedMsg struct {
	profile profile.Profile
	stats   studystats.Stats
}

type quizReadyMsg struct {
	quiz *quizgen.Quiz
	err  error
}

type quizCompletedMsg struct {
	outcome coach.QuizOutcome
	err     error
}

// QuizScreen is the interactive quiz runner.
type QuizScreen struct {
	coach *coach.Service
	gen   quizgen.Generator
	state state

	profile  profile.Profile
	mistakes []studystats.Mistake
	subject  topicpack.Subject
	topics   []string
	picker   components.Menu

	quiz     quizgen.Quiz
	current  int
	choices  []components.MultiChoice
	selected map[string]int
	outcome  coach.QuizOutcome
	scroll   int

	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen that generates its quiz with gen. A nil gen
// shows how to configure a provider.
func New(c *coach.Service, gen quizgen.Generator) *QuizScreen {
	return &QuizScreen{
		coach:    c,
		gen:      gen,
		selected: make(map[string]int),
	}
}

// NewWithQuiz creates a QuizScreen that skips generation and runs q.
func NewWithQuiz(c *coach.Service, q quizgen.Quiz) *QuizScreen {
	s := New(c, nil)
	s.start(q)
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.state != stateLoading {
		return nil
	}
	if s.gen == nil {
		s.fail(errNoProvider)
		return nil
	}
	c := s.coach
	return func() tea.Msg {
		ctx := context.Background()
		return contextLoadedMsg{profile: c.Profiles.Load(ctx), stats: c.Stats.Load(ctx)}
	}
}

func (s *QuizScreen) Title() string {
	if s.quiz.Title != "" {
		return s.quiz.Title
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.state {
	case stateSubject, stateTopic:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	case stateAnswering:
		return []layout.KeyHint{
			{Key: "A-F", Description: "Answer"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Tab", Description: "Skip"},
		}
	case stateResults:
		hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
		if s.gen != nil {
			hints = append(hints, layout.KeyHint{Key: "n", Description: "New quiz"})
		}
		return append(hints, layout.KeyHint{Key: "Enter", Description: "Done"})
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contextLoadedMsg:
		s.profile = msg.profile
		s.mistakes = msg.stats.Mistakes
		if subj, ok := msg.profile.Subject(); ok {
			s.pickTopic(subj, msg.stats)
		} else {
			s.pickSubject()
		}
		return s, nil

	case quizReadyMsg:
		if msg.err != nil {
			s.fail(fmt.Errorf("generate quiz: %w", msg.err))
			return s, nil
		}
		s.start(*msg.quiz)
		return s, nil

	case quizCompletedMsg:
		if msg.err != nil {
			s.fail(msg.err)
			return s, nil
		}
		s.outcome = msg.outcome
		s.state = stateResults
		for i := range s.choices {
			s.choices[i].Reveal()
		}
		return s, func() tea.Msg { return screen.StatsChangedMsg{} }

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.state {
	case stateSubject:
		if msg.String() == "enter" {
			subj := topicpack.AllSubjects()[s.picker.Selected]
			s.pickTopic(subj, studystats.Stats{Mistakes: s.mistakes})
			return s, nil
		}
		s.picker, _ = s.picker.Update(msg)

	case stateTopic:
		if msg.String() == "enter" {
			return s, s.generate(s.topics[s.picker.Selected])
		}
		s.picker, _ = s.picker.Update(msg)

	case stateAnswering:
		if msg.String() == "tab" {
			return s, s.advance()
		}
		mc := s.choices[s.current]
		mc, _ = mc.Update(msg)
		s.choices[s.current] = mc
		if mc.Answered() {
			s.selected[s.quiz.Questions[s.current].ID] = mc.ChosenIndex
			return s, s.advance()
		}

	case stateResults:
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			if s.scroll < len(s.choices)-1 {
				s.scroll++
			}
		case "n":
			if s.gen != nil {
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: New(s.coach, s.gen)} }
			}
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}

	case stateError:
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *QuizScreen) pickSubject() {
	subjects := topicpack.AllSubjects()
	items := make([]components.MenuItem, len(subjects))
	for i, subj := range subjects {
		items[i] = components.MenuItem{Label: string(subj)}
	}
	s.picker = components.NewMenu(items)
	s.state = stateSubject
}

// pickTopic lists the learner's weak topics in subj first, then the pack.
func (s *QuizScreen) pickTopic(subj topicpack.Subject, st studystats.Stats) {
	s.subject = subj
	pack := topicpack.Topics(subj)

	var topics []string
	seen := make(map[string]bool)
	for _, weak := range studystats.WeakTopics(st, studystats.MaxMistakes) {
		for _, t := range pack {
			if strings.EqualFold(strings.TrimSpace(weak), t) && !seen[t] && len(topics) < reviewTopics {
				topics = append(topics, t)
				seen[t] = true
			}
		}
	}
	review := len(topics)
	for _, t := range pack {
		if !seen[t] {
			topics = append(topics, t)
		}
	}

	items := make([]components.MenuItem, len(topics))
	for i, t := range topics {
		label := t
		if i < review {
			label = "↻ " + t
		}
		items[i] = components.MenuItem{Label: label}
	}
	s.topics = topics
	s.picker = components.NewMenu(items)
	s.state = stateTopic
}

func (s *QuizScreen) generate(topic string) tea.Cmd {
	s.state = stateGenerating
	gen := s.gen
	in := quizgen.Input{
		Subject:        s.subject,
		Topic:          topic,
		SkillLevel:     s.profile.SkillLevel,
		Count:          quizgen.DefaultCount,
		RecentMistakes: s.mistakes,
	}
	return func() tea.Msg {
		q, err := gen.Generate(context.Background(), in)
		return quizReadyMsg{quiz: q, err: err}
	}
}

func (s *QuizScreen) start(q quizgen.Quiz) {
	if len(q.Questions) == 0 {
		s.fail(coach.ErrEmptyQuiz)
		return
	}
	s.quiz = q
	s.current = 0
	s.choices = make([]components.MultiChoice, len(q.Questions))
	for i, qq := range q.Questions {
		s.choices[i] = components.NewMultiChoice(qq.Question, qq.Options, qq.CorrectIndex)
	}
	s.state = stateAnswering
}

// advance moves to the next question, or submits after the last one.
func (s *QuizScreen) advance() tea.Cmd {
	if s.current < len(s.choices)-1 {
		s.current++
		return nil
	}
	s.state = stateSubmitting
	c, q, selected := s.coach, s.quiz, s.selected
	return func() tea.Msg {
		out, err := c.CompleteQuiz(context.Background(), q, selected)
		return quizCompletedMsg{outcome: out, err: err}
	}
}

func (s *QuizScreen) fail(err error) {
	s.errMsg = err.Error()
	s.state = stateError
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	switch s.state {
	case stateLoading:
		return centered(width, theme.TextDim, "Loading...")
	case stateGenerating:
		return centered(width, theme.TextDim, "Generating your quiz...")
	case stateSubmitting:
		return centered(width, theme.TextDim, "Scoring...")
	case stateError:
		return centered(width, theme.Error, "Error: "+s.errMsg)
	case stateSubject:
		return s.viewPicker(width, cw, "Pick a subject")
	case stateTopic:
		return s.viewPicker(width, cw, fmt.Sprintf("Pick a %s topic", s.subject))
	case stateAnswering:
		return s.viewQuestion(width, cw)
	case stateResults:
		return s.viewResults(width, height, cw)
	}
	return ""
}

func centered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(fg).
		Render("\n\n  " + text)
}

func (s *QuizScreen) viewPicker(width, cw int, heading string) string {
	content := theme.Title.Render(heading) + "\n\n" + s.picker.View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(cw).Render(content))
}

func (s *QuizScreen) viewQuestion(width, cw int) string {
	total := len(s.choices)
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.current+1, total),
		float64(s.current)/float64(total), false, cw-4)

	content := progress.View() + "\n\n" + s.choices[s.current].View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(strings.ToUpper(s.quiz.Topic), content, cw))
}

func (s *QuizScreen) viewResults(width, height, cw int) string {
	score := s.outcome.Score
	style := theme.Correct
	if score.Accuracy < 60 {
		style = theme.Incorrect
	}
	summary := style.Render(fmt.Sprintf("%d / %d correct · %d%%", score.Correct, score.Total, score.Accuracy))
	if n := len(s.outcome.Mistakes); n > 0 {
		summary += theme.Subtitle.Render(fmt.Sprintf("   %d added to your review bank", n))
	}

	var b strings.Builder
	b.WriteString(summary + "\n")

	// Roughly ten lines per revealed question.
	visible := max((height-8)/10, 1)
	end := min(s.scroll+visible, len(s.choices))
	for i := s.scroll; i < end; i++ {
		b.WriteString("\n" + s.choices[i].View())
		if exp := s.quiz.Questions[i].Explanation; exp != "" {
			b.WriteString(theme.Hint.Render("  "+exp) + "\n")
		}
	}
	if end < len(s.choices) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("\n… %d more", len(s.choices)-end)) + "\n")
	}

	b.WriteString("\n" + theme.Label.Render("Ask your coach") + "\n")
	b.WriteString(theme.Body.Width(cw - 4).Render(s.outcome.Review))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(cw).Render(b.String()))
}
