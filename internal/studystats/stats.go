// Package studystats keeps the learner's streak, recent quiz scores and
// mistake bank.
package studystats

// StorageKey is the key the stats are persisted under.
const StorageKey = "adaptiveStudyCoachStats"

const (
	// MaxScores is how many recent quiz scores are retained.
	MaxScores = 5
	// MaxMistakes is the mistake bank capacity.
	MaxMistakes = 20
)

// DateLayout is the day-granularity format of LastStudyDate.
const DateLayout = "2006-01-02"

// Stats is the cumulative study telemetry.
type Stats struct {
	StreakDays    int       `json:"streakDays"`
	LastStudyDate string    `json:"lastStudyDate,omitempty"`
	QuizScores    []float64 `json:"quizScores"`
	TotalSessions int       `json:"totalSessions"`
	Mistakes      []Mistake `json:"mistakes"`
}

// Mistake is one incorrectly answered quiz question.
type Mistake struct {
	ID             string `json:"id"`
	Topic          string `json:"topic"`
	Question       string `json:"question"`
	CorrectAnswer  string `json:"correctAnswer"`
	SelectedAnswer string `json:"selectedAnswer"`
	Timestamp      string `json:"timestamp"`
}

// Clone returns a deep copy of s.
func (s Stats) Clone() Stats {
	out := s
	out.QuizScores = append([]float64{}, s.QuizScores...)
	out.Mistakes = append([]Mistake{}, s.Mistakes...)
	return out
}

// WeakTopics returns up to n distinct mistake topics, most recent first.
func WeakTopics(s Stats, n int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range s.Mistakes {
		if len(out) == n {
			break
		}
		if m.Topic == "" || seen[m.Topic] {
			continue
		}
		seen[m.Topic] = true
		out = append(out, m.Topic)
	}
	return out
}

// MistakesByTopic groups the mistake bank by topic, keeping bank order
// inside each group.
func MistakesByTopic(s Stats) map[string][]Mistake {
	out := make(map[string][]Mistake)
	for _, m := range s.Mistakes {
		out[m.Topic] = append(out[m.Topic], m)
	}
	return out
}
