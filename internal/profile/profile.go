// Package profile persists the learner's identity and coaching preferences.
package profile

import (
	"regexp"

	"github.com/abhisek/stemcoach/internal/topicpack"
)

// StorageKey is the key the profile is persisted under.
const StorageKey = "adaptiveStudyCoachProfile"

const (
	DefaultName       = "Guest Student"
	DefaultGradeLevel = "Engineering-track +2 (MPC/CS)"
)

// LearningMode selects between exam preparation and open-ended learning.
type LearningMode string

const (
	ModeExam  LearningMode = "exam"
	ModeLearn LearningMode = "learn"
)

// SkillLevel is the learner's self-reported level.
type SkillLevel string

const (
	Beginner     SkillLevel = "Beginner"
	Intermediate SkillLevel = "Intermediate"
	Advanced     SkillLevel = "Advanced"
)

// SkillLevels returns the levels in ascending order.
func SkillLevels() []SkillLevel {
	return []SkillLevel{Beginner, Intermediate, Advanced}
}

// Profile is the learner record. Zero integers mean "not set".
type Profile struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	GradeLevel          string       `json:"gradeLevel"`
	LearningMode        LearningMode `json:"learningMode"`
	SkillLevel          SkillLevel   `json:"skillLevel"`
	ExamDaysLeft        int          `json:"examDaysLeft,omitempty"`
	PaceSessionsPerWeek int          `json:"paceSessionsPerWeek,omitempty"`
	FocusSubject        string       `json:"focusSubject,omitempty"`
}

// Update is a partial profile. Nil fields are left unchanged.
// An empty FocusSubject or a zero count clears the field.
type Update struct {
	Name                *string
	GradeLevel          *string
	LearningMode        *LearningMode
	SkillLevel          *SkillLevel
	ExamDaysLeft        *int
	PaceSessionsPerWeek *int
	FocusSubject        *string
}

// Apply returns p with every provided field of u copied over it.
func (u Update) Apply(p Profile) Profile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.GradeLevel != nil {
		p.GradeLevel = *u.GradeLevel
	}
	if u.LearningMode != nil {
		p.LearningMode = *u.LearningMode
	}
	if u.SkillLevel != nil {
		p.SkillLevel = *u.SkillLevel
	}
	if u.ExamDaysLeft != nil {
		p.ExamDaysLeft = *u.ExamDaysLeft
	}
	if u.PaceSessionsPerWeek != nil {
		p.PaceSessionsPerWeek = *u.PaceSessionsPerWeek
	}
	if u.FocusSubject != nil {
		p.FocusSubject = *u.FocusSubject
	}
	return p
}

// Subject returns the locked focus subject, if any.
func (p Profile) Subject() (topicpack.Subject, bool) {
	s := topicpack.Subject(p.FocusSubject)
	return s, s.Valid()
}

// ScopeLabel describes what the coach is focusing on.
func (p Profile) ScopeLabel() string {
	if s, ok := p.Subject(); ok {
		return string(s)
	}
	return "All STEM subjects"
}

// legacyGrade matches grade labels from the retired NEB curriculum.
var legacyGrade = regexp.MustCompile(`(?i)neb`)

func normalizeGradeLevel(g string) string {
	if g == "" || legacyGrade.MatchString(g) {
		return DefaultGradeLevel
	}
	return g
}

func normalizeLearningMode(m LearningMode) LearningMode {
	if m == ModeExam || m == ModeLearn {
		return m
	}
	return ModeExam
}

func normalizeSkillLevel(l SkillLevel) SkillLevel {
	switch l {
	case Beginner, Intermediate, Advanced:
		return l
	}
	return Intermediate
}

// Normalize coerces every field into its valid domain.
func Normalize(p Profile) Profile {
	p.GradeLevel = normalizeGradeLevel(p.GradeLevel)
	p.LearningMode = normalizeLearningMode(p.LearningMode)
	p.SkillLevel = normalizeSkillLevel(p.SkillLevel)
	if p.ExamDaysLeft < 0 {
		p.ExamDaysLeft = 0
	}
	if p.PaceSessionsPerWeek < 0 {
		p.PaceSessionsPerWeek = 0
	}
	if p.FocusSubject != "" {
		if s, err := topicpack.ParseSubject(p.FocusSubject); err == nil {
			p.FocusSubject = string(s)
		} else {
			p.FocusSubject = ""
		}
	}
	return p
}
