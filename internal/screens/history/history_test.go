package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stemcoach/internal/store"
)

func openTestRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestEmptyHistory(t *testing.T) {
	s := New(openTestRepo(t))
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No quizzes yet") {
		t.Error("expected empty-history message")
	}
}

func TestListsQuizzesNewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	if err := repo.AppendQuizEvent(ctx, store.QuizEventData{Topic: "Kinematics", Total: 3, Correct: 2, Accuracy: 67}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendQuizEvent(ctx, store.QuizEventData{Topic: "Stoichiometry", Total: 3, Correct: 3, Accuracy: 100}); err != nil {
		t.Fatal(err)
	}

	s := New(repo)
	s.Update(s.Init()())

	if len(s.quizzes) != 2 || s.quizzes[0].Topic != "Stoichiometry" {
		t.Fatalf("quizzes = %+v", s.quizzes)
	}
	view := s.View(120, 30)
	if !strings.Contains(view, "2/3") || !strings.Contains(view, "100%") {
		t.Errorf("view missing scores: %q", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.expanded[1] {
		t.Error("expected second entry expanded")
	}
	if !strings.Contains(s.View(120, 30), "1 missed") {
		t.Error("expected details for the expanded entry")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Thermodynamics", 24); got != "Thermodynamics" {
		t.Errorf("short topic changed: %q", got)
	}
	if got := truncate("Electromagnetic induction", 10); got != "Electroma…" {
		t.Errorf("truncate = %q", got)
	}
}
