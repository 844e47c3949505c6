package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemcoach/internal/coach"
	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/quizgen"
	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/abhisek/stemcoach/internal/router"
	"github.com/abhisek/stemcoach/internal/screens/dashboard"
	"github.com/abhisek/stemcoach/internal/screens/quiz"
	"github.com/abhisek/stemcoach/internal/store"
	"github.com/abhisek/stemcoach/internal/studystats"
)

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, quizgen.Input) (*quizgen.Quiz, error) {
	return &quizgen.Quiz{}, nil
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	kv := store.NewMemoryKV()
	return Deps{
		Coach:            coach.New(profile.NewStore(kv), studystats.NewStore(kv)),
		PlanDays:         7,
		PlanDailyMinutes: 60,
	}
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	return msg.Screen
}

func TestQuizAndHistoryDisabledWithoutServices(t *testing.T) {
	h := New(newTestDeps(t))

	if h.menu.Selected != itemDashboard {
		t.Errorf("expected first enabled item selected, got %d", h.menu.Selected)
	}
	if !strings.Contains(h.View(120, 40), "Set an LLM API key") {
		t.Error("expected the LLM banner without a generator")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != itemExit {
		t.Errorf("expected history to be skipped, selected %d", h.menu.Selected)
	}
}

func TestMenuOpensScreens(t *testing.T) {
	deps := newTestDeps(t)
	deps.Generator = stubGenerator{}
	h := New(deps)

	if h.menu.Selected != itemQuiz {
		t.Fatalf("expected quiz selected, got %d", h.menu.Selected)
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*quiz.QuizScreen); !ok {
		t.Error("expected the quiz screen")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*dashboard.DashboardScreen); !ok {
		t.Error("expected the dashboard screen")
	}
}

func TestStatsReloadOnResume(t *testing.T) {
	deps := newTestDeps(t)
	h := New(deps)
	h.Update(h.Init()())
	if !strings.Contains(h.View(120, 40), "NEED DATA") {
		t.Error("expected need-data status before any quiz")
	}

	if _, err := deps.Coach.Stats.RecordQuizScore(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	_, cmd := h.Update(router.ResumedMsg{})
	h.Update(cmd())

	if h.dash.Readiness.Status != readiness.StatusExamReady {
		t.Errorf("status = %q, want %q", h.dash.Readiness.Status, readiness.StatusExamReady)
	}
	if variantFor(h.dash.Readiness) != MascotCelebrating {
		t.Error("expected the celebrating mascot when exam ready")
	}
}
