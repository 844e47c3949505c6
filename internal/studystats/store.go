package studystats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/abhisek/stemcoach/internal/observer"
	"github.com/abhisek/stemcoach/internal/store"
)

// Store records study activity and broadcasts every change.
type Store struct {
	kv  store.KV
	now func() time.Time

	mu  sync.Mutex // serializes read-modify-write; never held while notifying
	hub observer.Hub[Stats]
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Calendar days are taken in the
// location of the returned times, so the default clock keys days in local
// time rather than UTC; a session at 23:30 local counts toward that local
// day even when UTC has already rolled over.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a stats store persisting to kv.
func NewStore(kv store.KV, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load returns the persisted stats, or zero stats when nothing usable is
// stored. Load never fails.
func (s *Store) Load(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) Stats {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read study stats: %v\n", err)
		return empty()
	}
	if !ok {
		return empty()
	}
	return decode(raw)
}

func empty() Stats {
	return Stats{QuizScores: []float64{}, Mistakes: []Mistake{}}
}

// RecordSession marks today as studied. A second call on the same day
// returns the stats unchanged without writing or notifying.
func (s *Store) RecordSession(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	next, changed := s.advanceDay(s.loadLocked(ctx))
	var err error
	if changed {
		err = s.write(ctx, next)
	}
	s.mu.Unlock()

	if err != nil {
		return next, err
	}
	if changed {
		s.hub.Publish(next.Clone())
	}
	return next, nil
}

// RecordQuizResult records a session, appends accuracy to the score window
// and prepends mistakes to the mistake bank. It writes and notifies once.
func (s *Store) RecordQuizResult(ctx context.Context, accuracy float64, mistakes []Mistake) (Stats, error) {
	s.mu.Lock()
	next, _ := s.advanceDay(s.loadLocked(ctx))

	scores := append(next.QuizScores, accuracy)
	if len(scores) > MaxScores {
		scores = scores[len(scores)-MaxScores:]
	}
	next.QuizScores = append([]float64{}, scores...)

	merged := make([]Mistake, 0, len(mistakes)+len(next.Mistakes))
	merged = append(merged, mistakes...)
	merged = append(merged, next.Mistakes...)
	if len(merged) > MaxMistakes {
		merged = merged[:MaxMistakes]
	}
	next.Mistakes = merged

	err := s.write(ctx, next)
	s.mu.Unlock()

	if err != nil {
		return next, err
	}
	s.hub.Publish(next.Clone())
	return next, nil
}

// RecordQuizScore records a quiz result with no mistakes.
func (s *Store) RecordQuizScore(ctx context.Context, accuracy float64) (Stats, error) {
	return s.RecordQuizResult(ctx, accuracy, nil)
}

// Subscribe registers fn to receive every persisted change.
func (s *Store) Subscribe(fn func(Stats)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// Today returns the current calendar day key.
func (s *Store) Today() string {
	return s.now().Format(DateLayout)
}

// advanceDay applies the streak rules for today. It reports false when
// today was already recorded.
func (s *Store) advanceDay(st Stats) (Stats, bool) {
	now := s.now()
	today := now.Format(DateLayout)
	if st.LastStudyDate == today {
		return st, false
	}

	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)
	next := st.Clone()
	if st.LastStudyDate == yesterday {
		next.StreakDays = st.StreakDays + 1
	} else {
		next.StreakDays = 1
	}
	next.LastStudyDate = today
	next.TotalSessions = st.TotalSessions + 1
	return next, true
}

func (s *Store) write(ctx context.Context, st Stats) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode study stats: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save study stats: %w", err)
	}
	return nil
}

// decode reads each field independently so one malformed field only resets
// that field.
func decode(raw []byte) Stats {
	st := empty()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		fmt.Fprintf(os.Stderr, "warning: discarding corrupt study stats: %v\n", err)
		return st
	}

	var n float64
	if json.Unmarshal(fields["streakDays"], &n) == nil && n > 0 {
		st.StreakDays = int(n)
	}
	n = 0
	if json.Unmarshal(fields["totalSessions"], &n) == nil && n > 0 {
		st.TotalSessions = int(n)
	}

	var date string
	if json.Unmarshal(fields["lastStudyDate"], &date) == nil {
		st.LastStudyDate = date
	}

	var scores []float64
	if json.Unmarshal(fields["quizScores"], &scores) == nil && scores != nil {
		st.QuizScores = scores
	}

	var mistakes []Mistake
	if json.Unmarshal(fields["mistakes"], &mistakes) == nil && mistakes != nil {
		st.Mistakes = mistakes
	}
	return st
}
