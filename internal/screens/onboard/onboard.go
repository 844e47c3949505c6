// Package onboard is the profile setup form.
package onboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/router"
	"github.com/abhisek/stemcoach/internal/screen"
	"github.com/abhisek/stemcoach/internal/topicpack"
	"github.com/abhisek/stemcoach/internal/ui/components"
	"github.com/abhisek/stemcoach/internal/ui/layout"
	"github.com/abhisek/stemcoach/internal/ui/theme"
)

type step int

const (
	stepName step = iota
	stepGrade
	stepMode
	stepSkill
	stepSubject
	stepExamDays
	stepPace
	stepSaving
)

const allSubjectsLabel = "All STEM subjects"

const (
	maxExamDays = 365
	maxPace     = 21
)

type profileLoadedMsg struct {
	profile profile.Profile
}

type profileSavedMsg struct {
	profile profile.Profile
	err     error
}

// OnboardScreen walks the learner through every profile field and saves
// them in one update.
type OnboardScreen struct {
	profiles *profile.Store
	current  profile.Profile
	loaded   bool

	step   step
	input  components.TextInput
	choice components.Menu
	update profile.Update

	errMsg string
}

var _ screen.Screen = (*OnboardScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardScreen)(nil)

// New creates a new OnboardScreen.
func New(profiles *profile.Store) *OnboardScreen {
	return &OnboardScreen{profiles: profiles}
}

func (s *OnboardScreen) Init() tea.Cmd {
	profiles := s.profiles
	return func() tea.Msg {
		return profileLoadedMsg{profile: profiles.Load(context.Background())}
	}
}

func (s *OnboardScreen) Title() string {
	return "Profile"
}

func (s *OnboardScreen) KeyHints() []layout.KeyHint {
	if s.isChoiceStep() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *OnboardScreen) isChoiceStep() bool {
	return s.step == stepMode || s.step == stepSkill || s.step == stepSubject
}

func (s *OnboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.current = msg.profile
		s.loaded = true
		return s, s.enter(stepName)

	case profileSavedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.step = stepPace
			return s, s.enter(stepPace)
		}
		return s, tea.Batch(
			func() tea.Msg { return screen.StatsChangedMsg{} },
			func() tea.Msg { return router.PopScreenMsg{} },
		)

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if !s.loaded || s.step == stepSaving {
			return s, nil
		}
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	if !s.loaded {
		return s, nil
	}

	var cmd tea.Cmd
	if s.isChoiceStep() {
		s.choice, cmd = s.choice.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd
}

// submit records the current step's answer and moves on.
func (s *OnboardScreen) submit() tea.Cmd {
	s.errMsg = ""

	switch s.step {
	case stepName:
		name := strings.TrimSpace(s.input.Value())
		if name == "" {
			s.errMsg = "Name cannot be empty"
			return nil
		}
		s.update.Name = &name
		return s.enter(stepGrade)

	case stepGrade:
		grade := strings.TrimSpace(s.input.Value())
		s.update.GradeLevel = &grade
		return s.enter(stepMode)

	case stepMode:
		mode := profile.ModeExam
		if s.choice.Selected == 1 {
			mode = profile.ModeLearn
		}
		s.update.LearningMode = &mode
		return s.enter(stepSkill)

	case stepSkill:
		level := profile.SkillLevels()[s.choice.Selected]
		s.update.SkillLevel = &level
		return s.enter(stepSubject)

	case stepSubject:
		subject := ""
		if s.choice.Selected > 0 {
			subject = string(topicpack.AllSubjects()[s.choice.Selected-1])
		}
		s.update.FocusSubject = &subject
		if *s.update.LearningMode == profile.ModeExam {
			return s.enter(stepExamDays)
		}
		zero := 0
		s.update.ExamDaysLeft = &zero
		return s.enter(stepPace)

	case stepExamDays:
		days, ok := s.count()
		if !ok {
			return nil
		}
		s.update.ExamDaysLeft = &days
		return s.enter(stepPace)

	case stepPace:
		pace, ok := s.count()
		if !ok {
			return nil
		}
		s.update.PaceSessionsPerWeek = &pace
		s.step = stepSaving
		return s.save()
	}
	return nil
}

// count parses the numeric input. Blank clears the field.
func (s *OnboardScreen) count() (int, bool) {
	n, err := s.input.Count()
	if err != nil {
		s.errMsg = capitalize(err.Error())
		return 0, false
	}
	return n, true
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func (s *OnboardScreen) save() tea.Cmd {
	profiles, u := s.profiles, s.update
	return func() tea.Msg {
		p, err := profiles.Save(context.Background(), u)
		return profileSavedMsg{profile: p, err: err}
	}
}

// enter prepares the widget for st, prefilled from the current profile.
func (s *OnboardScreen) enter(st step) tea.Cmd {
	s.step = st
	p := s.current

	text := func(placeholder, value string) tea.Cmd {
		s.input = components.NewTextInput(placeholder, false, 48)
		s.input.Model.SetValue(value)
		return s.input.Init()
	}
	count := func(placeholder string, value, maxValue int) tea.Cmd {
		s.input = components.NewCountInput(placeholder, value, maxValue)
		return s.input.Init()
	}
	choose := func(labels []string, selected int) tea.Cmd {
		items := make([]components.MenuItem, len(labels))
		for i, l := range labels {
			items[i] = components.MenuItem{Label: l}
		}
		s.choice = components.NewMenu(items)
		s.choice.Selected = selected
		return nil
	}

	switch st {
	case stepName:
		return text(profile.DefaultName, p.Name)
	case stepGrade:
		return text(profile.DefaultGradeLevel, p.GradeLevel)
	case stepMode:
		selected := 0
		if p.LearningMode == profile.ModeLearn {
			selected = 1
		}
		return choose([]string{"Exam preparation", "Open-ended learning"}, selected)
	case stepSkill:
		labels := make([]string, 0, 3)
		selected := 0
		for i, l := range profile.SkillLevels() {
			labels = append(labels, string(l))
			if l == p.SkillLevel {
				selected = i
			}
		}
		return choose(labels, selected)
	case stepSubject:
		labels := []string{allSubjectsLabel}
		selected := 0
		for i, subj := range topicpack.AllSubjects() {
			labels = append(labels, string(subj))
			if string(subj) == p.FocusSubject {
				selected = i + 1
			}
		}
		return choose(labels, selected)
	case stepExamDays:
		return count("days until the exam", p.ExamDaysLeft, maxExamDays)
	case stepPace:
		return count("sessions per week", p.PaceSessionsPerWeek, maxPace)
	}
	return nil
}

var prompts = map[step]string{
	stepName:     "What should we call you?",
	stepGrade:    "Which grade or track are you in?",
	stepMode:     "What are you studying for?",
	stepSkill:    "How confident are you right now?",
	stepSubject:  "Which subject should the coach focus on?",
	stepExamDays: "How many days until your exam? (blank to skip)",
	stepPace:     "How many study sessions per week? (blank to skip)",
}

func (s *OnboardScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading profile...")
	}
	if s.step == stepSaving {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Saving profile...")
	}

	cw := components.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Step %d of %d", int(s.step)+1, int(stepSaving))) + "\n\n")
	b.WriteString(theme.Title.Render(prompts[s.step]) + "\n\n")
	if s.isChoiceStep() {
		b.WriteString(s.choice.View())
	} else {
		b.WriteString(s.input.View() + "\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Width(cw).Render(b.String()))
}
