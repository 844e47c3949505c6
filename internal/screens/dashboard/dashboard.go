package dashboard

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemcoach/internal/chart"
	"github.com/abhisek/stemcoach/internal/coach"
	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/abhisek/stemcoach/internal/router"
	"github.com/abhisek/stemcoach/internal/screen"
	"github.com/abhisek/stemcoach/internal/ui/components"
	"github.com/abhisek/stemcoach/internal/ui/layout"
	"github.com/abhisek/stemcoach/internal/ui/theme"
)

// readyTarget is the readiness score the progress bar counts toward.
const readyTarget = 80

type dashboardLoadedMsg struct {
	dash coach.Dashboard
}

// DashboardScreen shows readiness, momentum, weak topics and the score
// trend.
type DashboardScreen struct {
	coach           *coach.Service
	minutesThisWeek int
	dash            coach.Dashboard
	loaded          bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(c *coach.Service, minutesThisWeek int) *DashboardScreen {
	return &DashboardScreen{coach: c, minutesThisWeek: minutesThisWeek}
}

func (s *DashboardScreen) Init() tea.Cmd {
	c, minutes := s.coach, s.minutesThisWeek
	return func() tea.Msg {
		return dashboardLoadedMsg{dash: c.Dashboard(context.Background(), minutes)}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		s.dash = msg.dash
		s.loaded = true
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading dashboard...")
	}

	cw := components.ContentWidth(width)
	d := s.dash

	cards := []string{
		components.Card("READINESS", s.renderReadiness(cw-4), cw),
		components.Card("MOMENTUM", s.renderMomentum(), cw),
		components.Card("WEAK TOPICS", renderWeakTopics(d.WeakTopics), cw),
		components.Card("", chart.Sprint("Score trend", d.Trend, cw-4), cw),
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(cards, "\n"))
}

func (s *DashboardScreen) renderReadiness(inner int) string {
	d := s.dash
	r := d.Readiness

	head := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%d / 100", d.Gauge.Value)) +
		"  " + lipgloss.NewStyle().Foreground(toneColor(d.Gauge.Tone)).Render(r.Status)

	bar := components.NewProgressBar("", float64(readiness.ScoreProgress(float64(r.Score), readyTarget))/100, true, inner).
		WithFill(toneColor(d.Gauge.Tone))

	lines := []string{head, theme.Subtitle.Render(r.Summary), bar.View()}
	for _, step := range r.NextSteps {
		lines = append(lines, theme.Body.Render("• "+step))
	}
	return strings.Join(lines, "\n")
}

func (s *DashboardScreen) renderMomentum() string {
	d := s.dash
	accuracy := theme.Hint.Render("No quiz data yet")
	if d.HasMomentum {
		accuracy = theme.Body.Render(fmt.Sprintf("Recent accuracy %d%%", d.Momentum))
	}
	lines := []string{
		accuracy + theme.Subtitle.Render(fmt.Sprintf("   ★ %d-day streak   %d sessions", d.Stats.StreakDays, d.Stats.TotalSessions)),
		theme.Label.Render("Level ") + theme.Selected.Render(string(d.Signal.MasteryLevel)),
		theme.Body.Render(d.Signal.NextTarget),
		theme.Hint.Render(d.Signal.CoachingTip),
	}
	return strings.Join(lines, "\n")
}

func renderWeakTopics(topics []string) string {
	if len(topics) == 0 {
		return theme.Hint.Render("No mistakes banked. Nice work!")
	}
	lines := make([]string, len(topics))
	for i, t := range topics {
		lines[i] = theme.Body.Render(fmt.Sprintf("%d. %s", i+1, t))
	}
	return strings.Join(lines, "\n")
}

// toneColor maps the gauge tone to a terminal color.
func toneColor(t readiness.Tone) color.Color {
	if hex, ok := chart.Hex(t.Color()); ok {
		return lipgloss.Color(hex)
	}
	return theme.Text
}
