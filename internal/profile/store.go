package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/stemcoach/internal/observer"
	"github.com/abhisek/stemcoach/internal/store"
)

// Store loads, saves and broadcasts the learner profile.
// Construct one per process and share it.
type Store struct {
	kv    store.KV
	newID func() string

	mu  sync.Mutex // serializes read-modify-write; never held while notifying
	hub observer.Hub[Profile]
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides how guest ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore returns a profile store persisting to kv.
func NewStore(kv store.KV, opts ...Option) *Store {
	s := &Store{kv: kv, newID: guestID}
	for _, o := range opts {
		o(s)
	}
	return s
}

func guestID() string {
	return "guest-" + uuid.NewString()[:8]
}

// Guest returns a fresh default profile.
func (s *Store) Guest() Profile {
	return Profile{
		ID:           s.newID(),
		Name:         DefaultName,
		GradeLevel:   DefaultGradeLevel,
		LearningMode: ModeExam,
		SkillLevel:   Intermediate,
	}
}

// Load returns the persisted profile. A missing or unreadable record is
// replaced by a guest profile, which is persisted. Load never fails; storage
// problems are reported on stderr.
func (s *Store) Load(ctx context.Context) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) Profile {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read profile: %v\n", err)
		return s.Guest()
	}

	if !ok {
		guest := s.Guest()
		s.persist(ctx, guest)
		return guest
	}

	decoded, err := decode(raw, s.Guest())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: discarding corrupt profile: %v\n", err)
		guest := s.Guest()
		s.persist(ctx, guest)
		return guest
	}

	normalized := Normalize(decoded)
	if changed(raw, normalized) {
		s.persist(ctx, normalized)
	}
	return normalized
}

// Save merges u onto the current profile, persists it and notifies every
// subscriber before returning. Subscribers are not notified when the write
// fails.
func (s *Store) Save(ctx context.Context, u Update) (Profile, error) {
	s.mu.Lock()
	next := Normalize(u.Apply(s.loadLocked(ctx)))
	err := s.write(ctx, next)
	s.mu.Unlock()

	if err != nil {
		return next, err
	}
	s.hub.Publish(next)
	return next, nil
}

// Subscribe registers fn to receive every saved profile.
func (s *Store) Subscribe(fn func(Profile)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Store) write(ctx context.Context, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, p Profile) {
	if err := s.write(ctx, p); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// decode overlays the stored fields onto base. Fields of the wrong JSON
// type are ignored; only a document that is not a JSON object is an error.
func decode(raw []byte, base Profile) (Profile, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Profile{}, err
	}
	if fields == nil {
		return Profile{}, fmt.Errorf("profile is null")
	}

	p := base
	str := func(key string, dst *string) {
		var v string
		if json.Unmarshal(fields[key], &v) == nil && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		var v float64
		if json.Unmarshal(fields[key], &v) == nil {
			*dst = int(v)
		}
	}

	str("id", &p.ID)
	str("name", &p.Name)
	p.GradeLevel = ""
	str("gradeLevel", &p.GradeLevel)
	var mode, level string
	str("learningMode", &mode)
	str("skillLevel", &level)
	p.LearningMode = LearningMode(mode)
	p.SkillLevel = SkillLevel(level)
	num("examDaysLeft", &p.ExamDaysLeft)
	num("paceSessionsPerWeek", &p.PaceSessionsPerWeek)
	str("focusSubject", &p.FocusSubject)
	return p, nil
}

// changed reports whether the stored document differs from p once both are
// in canonical form.
func changed(raw []byte, p Profile) bool {
	var stored Profile
	if err := json.Unmarshal(raw, &stored); err != nil {
		return true
	}
	a, _ := json.Marshal(stored)
	b, _ := json.Marshal(p)
	return !bytes.Equal(a, b)
}
