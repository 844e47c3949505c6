package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/stemcoach/internal/store"
)

func newTestStore(t *testing.T) (*Store, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	return NewStore(kv, WithIDGenerator(func() string { return "guest-test0001" })), kv
}

func stored(t *testing.T, kv store.KV) map[string]any {
	t.Helper()
	raw, ok, err := kv.Get(context.Background(), StorageKey)
	if err != nil || !ok {
		t.Fatalf("profile not persisted (ok=%v, err=%v)", ok, err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("stored profile is not JSON: %v", err)
	}
	return m
}

func ptr[T any](v T) *T { return &v }

func TestLoad_CreatesAndPersistsGuest(t *testing.T) {
	s, kv := newTestStore(t)

	p := s.Load(context.Background())

	want := Profile{
		ID:           "guest-test0001",
		Name:         DefaultName,
		GradeLevel:   DefaultGradeLevel,
		LearningMode: ModeExam,
		SkillLevel:   Intermediate,
	}
	if p != want {
		t.Errorf("Load() = %+v, want %+v", p, want)
	}
	if got := stored(t, kv)["id"]; got != "guest-test0001" {
		t.Errorf("persisted id = %v, want guest-test0001", got)
	}
}

func TestLoad_DefaultGuestID(t *testing.T) {
	s := NewStore(store.NewMemoryKV())
	p := s.Load(context.Background())
	if len(p.ID) != len("guest-")+8 || p.ID[:6] != "guest-" {
		t.Errorf("guest id = %q, want guest-XXXXXXXX", p.ID)
	}
	if again := s.Load(context.Background()); again.ID != p.ID {
		t.Errorf("id changed between loads: %q then %q", p.ID, again.ID)
	}
}

func TestLoad_CorruptDataFallsBackToGuest(t *testing.T) {
	for _, raw := range []string{`{not json`, `null`, `[1,2]`, `"text"`} {
		s, kv := newTestStore(t)
		ctx := context.Background()
		kv.Put(ctx, StorageKey, []byte(raw))

		p := s.Load(ctx)
		if p.Name != DefaultName || p.ID != "guest-test0001" {
			t.Errorf("Load() with %s = %+v, want guest", raw, p)
		}
		if got := stored(t, kv)["name"]; got != DefaultName {
			t.Errorf("corrupt %s not replaced, stored name = %v", raw, got)
		}
	}
}

func TestLoad_NormalizesAndRepersists(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, p Profile)
	}{
		{
			name: "legacy grade",
			raw:  `{"id":"u1","name":"Asha","gradeLevel":"NEB Grade 12"}`,
			check: func(t *testing.T, p Profile) {
				if p.GradeLevel != DefaultGradeLevel {
					t.Errorf("GradeLevel = %q, want default", p.GradeLevel)
				}
			},
		},
		{
			name: "bogus enums",
			raw:  `{"id":"u1","name":"Asha","learningMode":"cram","skillLevel":"Expert"}`,
			check: func(t *testing.T, p Profile) {
				if p.LearningMode != ModeExam {
					t.Errorf("LearningMode = %q, want exam", p.LearningMode)
				}
				if p.SkillLevel != Intermediate {
					t.Errorf("SkillLevel = %q, want Intermediate", p.SkillLevel)
				}
			},
		},
		{
			name: "wrong field types",
			raw:  `{"id":"u1","name":42,"learningMode":7,"examDaysLeft":"soon"}`,
			check: func(t *testing.T, p Profile) {
				if p.Name != DefaultName {
					t.Errorf("Name = %q, want %q", p.Name, DefaultName)
				}
				if p.LearningMode != ModeExam {
					t.Errorf("LearningMode = %q, want exam", p.LearningMode)
				}
				if p.ExamDaysLeft != 0 {
					t.Errorf("ExamDaysLeft = %d, want 0", p.ExamDaysLeft)
				}
			},
		},
		{
			name: "focus subject case",
			raw:  `{"id":"u1","name":"Asha","focusSubject":"physics"}`,
			check: func(t *testing.T, p Profile) {
				if p.FocusSubject != "Physics" {
					t.Errorf("FocusSubject = %q, want Physics", p.FocusSubject)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv := newTestStore(t)
			ctx := context.Background()
			kv.Put(ctx, StorageKey, []byte(tt.raw))

			p := s.Load(ctx)
			tt.check(t, p)
			if p.ID != "u1" {
				t.Errorf("ID = %q, want u1", p.ID)
			}

			m := stored(t, kv)
			if m["learningMode"] != string(p.LearningMode) || m["gradeLevel"] != p.GradeLevel {
				t.Errorf("normalized profile not re-persisted: %v", m)
			}
		})
	}
}

func TestLoad_KeepsValidProfileUntouched(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	want := Profile{ID: "u1", Name: "Asha", GradeLevel: "Class 12", LearningMode: ModeLearn,
		SkillLevel: Advanced, PaceSessionsPerWeek: 4, FocusSubject: "Chemistry"}
	data, _ := json.Marshal(want)
	kv.Put(ctx, StorageKey, data)

	if got := s.Load(ctx); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSave_MergesPersistsAndNotifies(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	var first, second []Profile
	s.Subscribe(func(p Profile) { first = append(first, p) })
	s.Subscribe(func(p Profile) { second = append(second, p) })

	p, err := s.Save(ctx, Update{Name: ptr("Asha"), ExamDaysLeft: ptr(30)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.Name != "Asha" || p.ExamDaysLeft != 30 || p.SkillLevel != Intermediate {
		t.Errorf("Save() = %+v", p)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("notifications = %d/%d, want 1/1", len(first), len(second))
	}
	if first[0] != p || second[0] != p {
		t.Errorf("subscribers received %+v / %+v, want %+v", first[0], second[0], p)
	}
	if got := stored(t, kv)["name"]; got != "Asha" {
		t.Errorf("persisted name = %v, want Asha", got)
	}

	p, _ = s.Save(ctx, Update{SkillLevel: ptr(Advanced)})
	if p.Name != "Asha" || p.SkillLevel != Advanced {
		t.Errorf("second Save() lost fields: %+v", p)
	}
}

func TestSave_InvalidModeIsNormalized(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, Update{LearningMode: ptr(LearningMode("bogus"))}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Load(ctx).LearningMode; got != ModeExam {
		t.Errorf("LearningMode = %q, want exam", got)
	}
}

func TestSave_ClearsOptionalFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, Update{FocusSubject: ptr("Math"), PaceSessionsPerWeek: ptr(3)})
	p, _ := s.Save(ctx, Update{FocusSubject: ptr(""), PaceSessionsPerWeek: ptr(-2)})

	if p.FocusSubject != "" || p.PaceSessionsPerWeek != 0 {
		t.Errorf("optional fields not cleared: %+v", p)
	}
	if p.ScopeLabel() != "All STEM subjects" {
		t.Errorf("ScopeLabel() = %q", p.ScopeLabel())
	}
}

func TestUnsubscribe(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	calls := 0
	unsub := s.Subscribe(func(Profile) { calls++ })
	s.Save(ctx, Update{Name: ptr("A")})
	unsub()
	s.Save(ctx, Update{Name: ptr("B")})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSave_HandlerMaySaveAgain(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Subscribe(func(p Profile) {
		if p.Name == "first" {
			s.Save(ctx, Update{Name: ptr("second")})
		}
	})

	if _, err := s.Save(ctx, Update{Name: ptr("first")}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Load(ctx).Name; got != "second" {
		t.Errorf("Name = %q, want second", got)
	}
}

type failingKV struct{ store.KV }

func (failingKV) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestSave_WriteFailureSkipsNotification(t *testing.T) {
	s := NewStore(failingKV{store.NewMemoryKV()})
	notified := false
	s.Subscribe(func(Profile) { notified = true })

	_, err := s.Save(context.Background(), Update{Name: ptr("Asha")})
	if err == nil {
		t.Fatal("expected error")
	}
	if notified {
		t.Error("subscriber notified after failed write")
	}
}
