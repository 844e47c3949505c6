// Package coach ties the profile and stats stores to the study tools: it
// records finished quizzes and assembles the dashboard and study plans.
package coach

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/stemcoach/internal/chart"
	"github.com/abhisek/stemcoach/internal/profile"
	"github.com/abhisek/stemcoach/internal/quizgen"
	"github.com/abhisek/stemcoach/internal/readiness"
	"github.com/abhisek/stemcoach/internal/store"
	"github.com/abhisek/stemcoach/internal/studystats"
	"github.com/abhisek/stemcoach/internal/tools"
	"github.com/abhisek/stemcoach/internal/topicpack"
)

// ErrEmptyQuiz is returned when completing a quiz with no questions.
var ErrEmptyQuiz = errors.New("quiz has no questions")

const (
	weakTopicCount  = 3
	planTopicsCount = 3
)

// Service is the coaching facade used by the CLI.
type Service struct {
	Profiles *profile.Store
	Stats    *studystats.Store
	events   store.EventRepo
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEvents records every completed quiz in repo.
func WithEvents(repo store.EventRepo) Option {
	return func(s *Service) { s.events = repo }
}

// WithClock overrides the time source used for mistake timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over the given stores.
func New(profiles *profile.Store, stats *studystats.Store, opts ...Option) *Service {
	s := &Service{Profiles: profiles, Stats: stats, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// QuizOutcome is the result of completing a quiz.
type QuizOutcome struct {
	Score    tools.QuizScore
	Mistakes []studystats.Mistake
	Stats    studystats.Stats
	// Review is the follow-up request asking for explanations.
	Review string
}

// CompleteQuiz scores a quiz, banks its mistakes and records the result.
// selected maps question ids to chosen option indexes; missing questions
// count as unanswered.
func (s *Service) CompleteQuiz(ctx context.Context, q quizgen.Quiz, selected map[string]int) (QuizOutcome, error) {
	if len(q.Questions) == 0 {
		return QuizOutcome{}, ErrEmptyQuiz
	}

	score := tools.ScoreQuiz(q.Answers(selected))
	mistakes := quizgen.BuildMistakes(q, selected, s.now())

	st, err := s.Stats.RecordQuizResult(ctx, float64(score.Accuracy), mistakes)
	if err != nil {
		return QuizOutcome{}, fmt.Errorf("record quiz result: %w", err)
	}

	if s.events != nil {
		ev := store.QuizEventData{Topic: q.Topic, Total: score.Total, Correct: score.Correct, Accuracy: score.Accuracy}
		if err := s.events.AppendQuizEvent(ctx, ev); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log quiz event: %v\n", err)
		}
	}

	return QuizOutcome{
		Score:    score,
		Mistakes: mistakes,
		Stats:    st,
		Review:   quizgen.ReviewRequest(q, selected),
	}, nil
}

// Dashboard is a snapshot of the learner's progress.
type Dashboard struct {
	Profile     profile.Profile
	Stats       studystats.Stats
	Readiness   readiness.Result
	Gauge       readiness.GaugeReading
	Signal      tools.ProgressSignal
	Momentum    int
	HasMomentum bool
	WeakTopics  []string
	Trend       chart.Result
}

// Dashboard loads the profile and stats and derives every progress figure.
// minutesThisWeek feeds the progress signal's coaching tip.
func (s *Service) Dashboard(ctx context.Context, minutesThisWeek int) Dashboard {
	p := s.Profiles.Load(ctx)
	st := s.Stats.Load(ctx)

	r := readiness.Compute(st.QuizScores, st.StreakDays)
	momentum, ok := readiness.Momentum(st.QuizScores)

	return Dashboard{
		Profile:   p,
		Stats:     st,
		Readiness: r,
		Gauge:     readiness.Gauge(float64(r.Score)),
		Signal: tools.BuildProgressSignal(tools.ProgressSignalInput{
			RecentAccuracy:         float64(momentum),
			StreakDays:             st.StreakDays,
			MinutesStudiedThisWeek: minutesThisWeek,
		}),
		Momentum:    momentum,
		HasMomentum: ok,
		WeakTopics:  studystats.WeakTopics(st, weakTopicCount),
		Trend:       chart.Normalize(chart.ScoreTrend(st.QuizScores)),
	}
}

// PlanFor builds a study plan. An empty subject falls back to the
// profile's focus subject. Focus topics are the learner's weak topics that
// belong to the subject, or the first topics of its pack when there are
// none. Without any subject the plan covers all STEM subjects and cycles
// through the weak topics, if any.
func (s *Service) PlanFor(ctx context.Context, subject topicpack.Subject, days, dailyMinutes int) (tools.StudyPlan, error) {
	p := s.Profiles.Load(ctx)
	if subject == "" {
		subject, _ = p.Subject()
	}
	if subject != "" && !subject.Valid() {
		return tools.StudyPlan{}, fmt.Errorf("%w: %q", topicpack.ErrUnknownSubject, subject)
	}

	weak := studystats.WeakTopics(s.Stats.Load(ctx), studystats.MaxMistakes)

	in := tools.StudyPlanInput{Days: days, DailyMinutes: dailyMinutes}
	if subject == "" {
		in.Subject = p.ScopeLabel()
		in.FocusTopics = firstN(weak, planTopicsCount)
		return tools.BuildStudyPlan(in), nil
	}

	pack := topicpack.Topics(subject)
	in.Subject = string(subject)
	in.FocusTopics = firstN(inPack(weak, pack), planTopicsCount)
	if len(in.FocusTopics) == 0 {
		in.FocusTopics = firstN(pack, planTopicsCount)
	}
	return tools.BuildStudyPlan(in), nil
}

// inPack keeps the topics that name a pack topic, using the pack's
// spelling.
func inPack(topics, pack []string) []string {
	var out []string
	for _, t := range topics {
		for _, p := range pack {
			if strings.EqualFold(strings.TrimSpace(t), p) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func firstN(xs []string, n int) []string {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}
