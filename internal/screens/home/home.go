package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemcoach/internal/coach"
	"github.com/abhisek/stemcoach/internal/quizgen"
	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/abhisek/stemcoach/internal/router"
	"github.com/abhisek/stemcoach/internal/screen"
	"github.com/abhisek/stemcoach/internal/screens/dashboard"
	"github.com/abhisek/stemcoach/internal/screens/history"
	"github.com/abhisek/stemcoach/internal/screens/onboard"
	"github.com/abhisek/stemcoach/internal/screens/plan"
	"github.com/abhisek/stemcoach/internal/screens/quiz"
	"github.com/abhisek/stemcoach/internal/store"
	"github.com/abhisek/stemcoach/internal/ui/components"
	"github.com/abhisek/stemcoach/internal/ui/theme"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Coach *coach.Service
	// Generator is nil when no LLM provider is configured.
	Generator quizgen.Generator
	// Events is nil when quiz history is unavailable.
	Events store.EventRepo

	MinutesThisWeek  int
	PlanDays         int
	PlanDailyMinutes int
}

type statsLoadedMsg struct {
	dash coach.Dashboard
}

const (
	itemQuiz = iota
	itemDashboard
	itemPlan
	itemProfile
	itemHistory
	itemExit
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool

	dash   coach.Dashboard
	loaded bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	labels := []string{"TAKE A QUIZ", "DASHBOARD", "STUDY PLAN", "PROFILE", "QUIZ HISTORY", "EXIT"}

	disabled := map[int]bool{
		itemQuiz:    deps.Generator == nil,
		itemHistory: deps.Events == nil,
	}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: labels[itemQuiz], Disabled: disabled[itemQuiz], Action: push(func() screen.Screen {
			return quiz.New(deps.Coach, deps.Generator)
		})},
		{Label: labels[itemDashboard], Action: push(func() screen.Screen {
			return dashboard.New(deps.Coach, deps.MinutesThisWeek)
		})},
		{Label: labels[itemPlan], Action: push(func() screen.Screen {
			return plan.New(deps.Coach, deps.PlanDays, deps.PlanDailyMinutes)
		})},
		{Label: labels[itemProfile], Action: push(func() screen.Screen {
			return onboard.New(deps.Coach.Profiles)
		})},
		{Label: labels[itemHistory], Disabled: disabled[itemHistory], Action: push(func() screen.Screen {
			return history.New(deps.Events)
		})},
		{Label: labels[itemExit], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: labels,
		disabled:   disabled,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	c, minutes := h.deps.Coach, h.deps.MinutesThisWeek
	return func() tea.Msg {
		return statsLoadedMsg{dash: c.Dashboard(context.Background(), minutes)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		h.dash = msg.dash
		h.loaded = true
		return h, nil
	case router.ResumedMsg:
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes header and footer; add them back to judge the terminal.
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)
	if cw > 60 {
		cw = 60
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	r := readiness.Compute(nil, 0)
	streak, mistakes := 0, 0
	if h.loaded {
		r = h.dash.Readiness
		streak = h.dash.Stats.StreakDays
		mistakes = len(h.dash.Stats.Mistakes)
	}

	if !compact {
		sections = append(sections, renderMascotBox(variantFor(r), cw))
	}
	sections = append(sections, renderStatsBar(r, streak, mistakes, cw, compact))

	if h.loaded && h.dash.Profile.Name != "" {
		greeting := "Welcome back, " + h.dash.Profile.Name + " · " + h.dash.Profile.ScopeLabel()
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(greeting))
	}

	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	if h.deps.Generator == nil {
		sections = append(sections, renderLLMBanner(cw))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
