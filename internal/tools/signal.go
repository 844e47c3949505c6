package tools

// MasteryLevel is the coarse competency tier.
type MasteryLevel string

const (
	Starter      MasteryLevel = "starter"
	Steady       MasteryLevel = "steady"
	Accelerating MasteryLevel = "accelerating"
	ExamReady    MasteryLevel = "exam-ready"
)

const (
	targetExamReady = "Try mixed-topic timed quizzes."
	targetDefault   = "Aim for 3 focused sessions this week."

	tipLowMinutes  = "Add one short 25-minute session to lock memory."
	tipHighMinutes = "Keep momentum with a quick review at night."

	// weeklyMinutesTarget is the weekly study time below which the coach
	// asks for an extra session.
	weeklyMinutesTarget = 180
)

// ProgressSignalInput is the buildProgressSignal tool input.
type ProgressSignalInput struct {
	RecentAccuracy         float64 `json:"recentAccuracy"`
	StreakDays             int     `json:"streakDays"`
	MinutesStudiedThisWeek int     `json:"minutesStudiedThisWeek"`
}

// ProgressSignal is the buildProgressSignal tool output.
type ProgressSignal struct {
	MasteryLevel MasteryLevel `json:"masteryLevel"`
	NextTarget   string       `json:"nextTarget"`
	CoachingTip  string       `json:"coachingTip"`
}

// BuildProgressSignal classifies the learner and picks the next target and
// a coaching tip.
func BuildProgressSignal(in ProgressSignalInput) ProgressSignal {
	var level MasteryLevel
	switch {
	case in.RecentAccuracy >= 85 && in.StreakDays >= 5:
		level = ExamReady
	case in.RecentAccuracy >= 70:
		level = Accelerating
	case in.RecentAccuracy >= 55:
		level = Steady
	default:
		level = Starter
	}

	sig := ProgressSignal{
		MasteryLevel: level,
		NextTarget:   targetDefault,
		CoachingTip:  tipHighMinutes,
	}
	if level == ExamReady {
		sig.NextTarget = targetExamReady
	}
	if in.MinutesStudiedThisWeek < weeklyMinutesTarget {
		sig.CoachingTip = tipLowMinutes
	}
	return sig
}
