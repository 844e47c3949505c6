package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stemcoach/internal/coach"
	"github.com/abhisek/stemcoach/internal/quizgen"
	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/abhisek/stemcoach/internal/router"
	"github.com/abhisek/stemcoach/internal/screen"
	"github.com/abhisek/stemcoach/internal/screens/home"
	"github.com/abhisek/stemcoach/internal/screens/onboard"
	"github.com/abhisek/stemcoach/internal/screens/quiz"
	"github.com/abhisek/stemcoach/internal/store"
	"github.com/abhisek/stemcoach/internal/studystats"
	"github.com/abhisek/stemcoach/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Coach *coach.Service
	// Generator is nil when no LLM provider is configured.
	Generator quizgen.Generator
	// Events is nil when quiz history is unavailable.
	Events store.EventRepo

	MinutesThisWeek  int
	PlanDays         int
	PlanDailyMinutes int

	// Quiz, when set, is opened immediately instead of generating one.
	Quiz *quizgen.Quiz
	// OpenQuiz starts on the quiz picker.
	OpenQuiz bool
	// OpenProfile starts on the profile setup screen.
	OpenProfile bool
}

type headerLoadedMsg struct {
	stats layout.HeaderStats
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	coach  *coach.Service
	header layout.HeaderStats
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	r := router.New(home.New(home.Deps{
		Coach:            opts.Coach,
		Generator:        opts.Generator,
		Events:           opts.Events,
		MinutesThisWeek:  opts.MinutesThisWeek,
		PlanDays:         opts.PlanDays,
		PlanDailyMinutes: opts.PlanDailyMinutes,
	}))
	return AppModel{
		router: r,
		coach:  opts.Coach,
		header: layout.HeaderStats{Readiness: -1},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.recordSession(), m.router.Active().Init())
}

// recordSession marks today as studied, then loads the header.
func (m AppModel) recordSession() tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		st, err := c.Stats.RecordSession(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record study session: %v\n", err)
		}
		return headerLoadedMsg{stats: headerStats(st)}
	}
}

func (m AppModel) loadHeader() tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		return headerLoadedMsg{stats: headerStats(c.Stats.Load(context.Background()))}
	}
}

func headerStats(st studystats.Stats) layout.HeaderStats {
	r := readiness.Compute(st.QuizScores, st.StreakDays)
	return layout.HeaderStats{Readiness: r.Score, Streak: st.StreakDays}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerLoadedMsg:
		m.header = msg.stats
		return m, nil

	case screen.StatsChangedMsg:
		return m, m.loadHeader()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.header, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	switch {
	case opts.Quiz != nil:
		m.router.Push(quiz.NewWithQuiz(opts.Coach, *opts.Quiz))
	case opts.OpenQuiz:
		m.router.Push(quiz.New(opts.Coach, opts.Generator))
	case opts.OpenProfile:
		m.router.Push(onboard.New(opts.Coach.Profiles))
	}

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
