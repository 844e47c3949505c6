package plan

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemcoach/internal/coach"
	"github.com/abhisek/stemcoach/internal/router"
	"github.com/abhisek/stemcoach/internal/screen"
	"github.com/abhisek/stemcoach/internal/tools"
	"github.com/abhisek/stemcoach/internal/topicpack"
	"github.com/abhisek/stemcoach/internal/ui/components"
	"github.com/abhisek/stemcoach/internal/ui/layout"
	"github.com/abhisek/stemcoach/internal/ui/theme"
)

type planLoadedMsg struct {
	plan tools.StudyPlan
	err  error
}

// PlanScreen shows a day-by-day study plan. Tab cycles the subject, starting
// from the profile's focus subject.
type PlanScreen struct {
	coach        *coach.Service
	days         int
	dailyMinutes int

	subjects []topicpack.Subject // "" is the profile subject
	subject  int

	plan   tools.StudyPlan
	offset int
	loaded bool
	errMsg string
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)

// New creates a new PlanScreen.
func New(c *coach.Service, days, dailyMinutes int) *PlanScreen {
	return &PlanScreen{
		coach:        c,
		days:         days,
		dailyMinutes: dailyMinutes,
		subjects:     append([]topicpack.Subject{""}, topicpack.AllSubjects()...),
	}
}

func (s *PlanScreen) Init() tea.Cmd {
	c, subject, days, minutes := s.coach, s.subjects[s.subject], s.days, s.dailyMinutes
	return func() tea.Msg {
		p, err := c.PlanFor(context.Background(), subject, days, minutes)
		return planLoadedMsg{plan: p, err: err}
	}
}

func (s *PlanScreen) Title() string {
	return "Study Plan"
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Subject"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		s.loaded = true
		s.offset = 0
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.plan = msg.plan
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.subject = (s.subject + 1) % len(s.subjects)
			s.loaded = false
			return s, s.Init()
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.plan.Plan)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *PlanScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Building plan...")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.plan.Goal) + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d days · %d min/day", s.plan.Days, s.plan.DailyMinutes)) + "\n")

	if len(s.plan.Plan) == 0 {
		b.WriteString("\n" + theme.Hint.Render("No days to plan."))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(cw).Render(b.String()))
	}

	// Each day takes five lines including the spacer.
	visible := max((height-6)/5, 1)
	end := min(s.offset+visible, len(s.plan.Plan))
	for _, day := range s.plan.Plan[s.offset:end] {
		b.WriteString("\n" + theme.Label.Render(fmt.Sprintf("Day %d", day.Day)) + "  " + theme.Selected.Render(day.Focus) + "\n")
		for _, task := range day.Tasks {
			b.WriteString(theme.Body.Render("  • "+task) + "\n")
		}
	}
	if end < len(s.plan.Plan) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… %d more days", len(s.plan.Plan)-end)))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(cw).Render(b.String()))
}
