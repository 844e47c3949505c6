// Package readiness derives exam-readiness and momentum figures from the
// learner's recent quiz scores and streak.
package readiness

import (
	"fmt"
	"math"
)

const (
	StatusNeedData   = "Need data"
	StatusExamReady  = "Exam ready"
	StatusOnTrack    = "On track"
	StatusBuilding   = "Building"
	StatusNeedsFocus = "Needs focus"
)

const (
	// streakBonusCap is the most a streak can add to the score.
	streakBonusCap = 12
	accuracyWeight = 0.85
)

// Result is a readiness score with its explanation.
type Result struct {
	Score     int      `json:"score"`
	Status    string   `json:"status"`
	Summary   string   `json:"summary"`
	NextSteps []string `json:"nextSteps"`
}

// Compute blends the rounded mean of scores with a streak bonus of two
// points per day, capped at 12, into a 0..100 score.
func Compute(scores []float64, streakDays int) Result {
	if len(scores) == 0 {
		return Result{
			Score:   0,
			Status:  StatusNeedData,
			Summary: "Complete a quick quiz to personalize your readiness score.",
			NextSteps: []string{
				"Take a 5-question quiz",
				"Review your weakest topic",
				"Log a 25-minute study session",
			},
		}
	}

	average := round(mean(scores))
	bonus := min(streakDays*2, streakBonusCap)
	score := Clamp(float64(average)*accuracyWeight + float64(bonus))

	return Result{
		Score:     score,
		Status:    status(score),
		Summary:   fmt.Sprintf("Based on your recent quiz average (%d%%) and a %d-day streak.", average, streakDays),
		NextSteps: nextSteps(score),
	}
}

func status(score int) string {
	switch {
	case score >= 80:
		return StatusExamReady
	case score >= 65:
		return StatusOnTrack
	case score >= 50:
		return StatusBuilding
	default:
		return StatusNeedsFocus
	}
}

func nextSteps(score int) []string {
	switch {
	case score >= 80:
		return []string{"Keep the streak", "Do a timed mixed-topic set", "Light review"}
	case score >= 65:
		return []string{"Do a mixed-topic quiz", "Review mistakes", "Add one study block"}
	default:
		return []string{"Target weakest topic", "Do a short quiz", "Review formulas"}
	}
}

// Clamp rounds v half up and limits it to 0..100.
func Clamp(v float64) int {
	return max(0, min(100, round(v)))
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
