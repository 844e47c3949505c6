package studystats

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/stemcoach/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time   { return c.t }
func (c *fakeClock) advance(days int) { c.t = c.t.AddDate(0, 0, days) }
func (c *fakeClock) set(ts time.Time) { c.t = ts }

func newTestStore(t *testing.T) (*Store, *fakeClock, *store.MemoryKV) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	kv := store.NewMemoryKV()
	return NewStore(kv, WithClock(clock.Now)), clock, kv
}

func mistake(id string) Mistake {
	return Mistake{ID: id, Topic: "topic-" + id, Question: "q" + id, Timestamp: "2026-03-10T09:00:00Z"}
}

func TestLoad_Defaults(t *testing.T) {
	s, _, _ := newTestStore(t)
	st := s.Load(context.Background())
	if st.StreakDays != 0 || st.TotalSessions != 0 || st.LastStudyDate != "" {
		t.Errorf("Load() = %+v, want zero stats", st)
	}
	if st.QuizScores == nil || st.Mistakes == nil {
		t.Error("sequences should be empty, not nil")
	}
}

func TestLoad_MalformedFields(t *testing.T) {
	tests := []struct {
		raw        string
		wantStreak int
		wantScores int
	}{
		{`{{{`, 0, 0},
		{`null`, 0, 0},
		{`{"streakDays":4,"quizScores":"oops","mistakes":{"a":1}}`, 4, 0},
		{`{"streakDays":"x","quizScores":[50,60]}`, 0, 2},
	}
	for _, tt := range tests {
		s, _, kv := newTestStore(t)
		ctx := context.Background()
		kv.Put(ctx, StorageKey, []byte(tt.raw))

		st := s.Load(ctx)
		if st.StreakDays != tt.wantStreak {
			t.Errorf("%s: StreakDays = %d, want %d", tt.raw, st.StreakDays, tt.wantStreak)
		}
		if len(st.QuizScores) != tt.wantScores {
			t.Errorf("%s: len(QuizScores) = %d, want %d", tt.raw, len(st.QuizScores), tt.wantScores)
		}
		if st.Mistakes == nil {
			t.Errorf("%s: Mistakes is nil", tt.raw)
		}
	}
}

func TestRecordSession_SameDayIsNoop(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()

	notifications := 0
	s.Subscribe(func(Stats) { notifications++ })

	first, err := s.RecordSession(ctx)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	clock.set(clock.t.Add(10 * time.Hour))
	second, err := s.RecordSession(ctx)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same-day call changed stats: %+v -> %+v", first, second)
	}
	if second.StreakDays != 1 || second.TotalSessions != 1 || second.LastStudyDate != "2026-03-10" {
		t.Errorf("stats = %+v", second)
	}
	if notifications != 1 {
		t.Errorf("notifications = %d, want 1", notifications)
	}
}

func TestRecordSession_StreakContinuity(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()

	for n := 1; n <= 6; n++ {
		st, err := s.RecordSession(ctx)
		if err != nil {
			t.Fatalf("day %d: %v", n, err)
		}
		if st.StreakDays != n {
			t.Errorf("day %d: StreakDays = %d, want %d", n, st.StreakDays, n)
		}
		clock.advance(1)
	}

	clock.advance(1) // two-day gap since the last session
	st, _ := s.RecordSession(ctx)
	if st.StreakDays != 1 {
		t.Errorf("after gap StreakDays = %d, want 1", st.StreakDays)
	}
	if st.TotalSessions != 7 {
		t.Errorf("TotalSessions = %d, want 7", st.TotalSessions)
	}
}

func TestRecordSession_AcrossMonthBoundary(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()

	clock.set(time.Date(2026, 2, 28, 23, 30, 0, 0, time.UTC))
	s.RecordSession(ctx)
	clock.set(time.Date(2026, 3, 1, 0, 15, 0, 0, time.UTC))
	st, _ := s.RecordSession(ctx)

	if st.StreakDays != 2 {
		t.Errorf("StreakDays = %d, want 2", st.StreakDays)
	}
}

func TestRecordSession_KeysDaysInClockLocation(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()
	eastern := time.FixedZone("UTC-5", -5*60*60)

	// 23:30 local is already 04:30 UTC the next day.
	clock.set(time.Date(2026, 3, 10, 23, 30, 0, 0, eastern))
	st, _ := s.RecordSession(ctx)
	if st.LastStudyDate != "2026-03-10" {
		t.Errorf("LastStudyDate = %q, want local day 2026-03-10", st.LastStudyDate)
	}

	clock.set(time.Date(2026, 3, 11, 0, 30, 0, 0, eastern))
	st, _ = s.RecordSession(ctx)
	if st.LastStudyDate != "2026-03-11" || st.StreakDays != 2 {
		t.Errorf("got %q streak %d, want 2026-03-11 streak 2", st.LastStudyDate, st.StreakDays)
	}
}

func TestRecordQuizResult_ScoreWindow(t *testing.T) {
	s, clock, _ := newTestStore(t)
	ctx := context.Background()

	var st Stats
	for i := 1; i <= 8; i++ {
		var err error
		st, err = s.RecordQuizResult(ctx, float64(i*10), nil)
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if len(st.QuizScores) > MaxScores {
			t.Fatalf("len(QuizScores) = %d after %d results", len(st.QuizScores), i)
		}
		clock.advance(i % 2)
	}

	want := []float64{40, 50, 60, 70, 80}
	if !reflect.DeepEqual(st.QuizScores, want) {
		t.Errorf("QuizScores = %v, want %v", st.QuizScores, want)
	}
}

func TestRecordQuizResult_MistakeBank(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	for batch := 0; batch < 5; batch++ {
		var ms []Mistake
		for j := 0; j < 6; j++ {
			ms = append(ms, mistake(fmt.Sprintf("%d-%d", batch, j)))
		}
		if _, err := s.RecordQuizResult(ctx, 50, ms); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	st := s.Load(ctx)
	if len(st.Mistakes) != MaxMistakes {
		t.Fatalf("len(Mistakes) = %d, want %d", len(st.Mistakes), MaxMistakes)
	}
	if st.Mistakes[0].ID != "4-0" {
		t.Errorf("newest mistake = %s, want 4-0", st.Mistakes[0].ID)
	}
	if st.Mistakes[19].ID != "1-1" {
		t.Errorf("oldest retained = %s, want 1-1", st.Mistakes[19].ID)
	}
}

func TestRecordQuizResult_NewMistakesWinOnOverflow(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.RecordQuizResult(ctx, 50, []Mistake{mistake("old")})

	var many []Mistake
	for i := 0; i < 25; i++ {
		many = append(many, mistake(fmt.Sprint(i)))
	}
	st, _ := s.RecordQuizResult(ctx, 50, many)

	if len(st.Mistakes) != MaxMistakes {
		t.Fatalf("len(Mistakes) = %d", len(st.Mistakes))
	}
	for _, m := range st.Mistakes {
		if m.ID == "old" {
			t.Error("old mistake kept ahead of new ones")
		}
	}
}

func TestRecordQuizResult_NotifiesOnce(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	var got []Stats
	s.Subscribe(func(st Stats) { got = append(got, st) })

	st, _ := s.RecordQuizResult(ctx, 80, []Mistake{mistake("a")})

	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
	if !reflect.DeepEqual(got[0], st) {
		t.Errorf("notified %+v, returned %+v", got[0], st)
	}
	if st.StreakDays != 1 || st.TotalSessions != 1 {
		t.Errorf("quiz did not record a session: %+v", st)
	}
}

func TestRecordQuizScore(t *testing.T) {
	s, _, _ := newTestStore(t)
	st, err := s.RecordQuizScore(context.Background(), 90)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !reflect.DeepEqual(st.QuizScores, []float64{90}) || len(st.Mistakes) != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestSubscriberCannotCorruptState(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.Subscribe(func(st Stats) { st.QuizScores[0] = -1 })
	s.RecordQuizScore(ctx, 70)

	if got := s.Load(ctx).QuizScores[0]; got != 70 {
		t.Errorf("QuizScores[0] = %v, want 70", got)
	}
}

func TestWeakTopics(t *testing.T) {
	st := Stats{Mistakes: []Mistake{
		{Topic: "Optics"}, {Topic: "Optics"}, {Topic: ""}, {Topic: "Kinematics"}, {Topic: "Waves"},
	}}
	got := WeakTopics(st, 2)
	if !reflect.DeepEqual(got, []string{"Optics", "Kinematics"}) {
		t.Errorf("WeakTopics() = %v", got)
	}
	if n := len(MistakesByTopic(st)["Optics"]); n != 2 {
		t.Errorf("MistakesByTopic[Optics] = %d, want 2", n)
	}
}
