package tools

import "fmt"

// StudyPlanInput is the buildStudyPlan tool input.
type StudyPlanInput struct {
	Subject      string   `json:"subject"`
	FocusTopics  []string `json:"focusTopics,omitempty"`
	Days         int      `json:"days"`
	DailyMinutes int      `json:"dailyMinutes"`
}

// StudyPlanDay is one day of a plan.
type StudyPlanDay struct {
	Day   int      `json:"day"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// StudyPlan is the buildStudyPlan tool output.
type StudyPlan struct {
	Goal         string         `json:"goal"`
	Days         int            `json:"days"`
	DailyMinutes int            `json:"dailyMinutes"`
	Plan         []StudyPlanDay `json:"plan"`
}

// BuildStudyPlan cycles through the focus topics (or the subject itself
// when none are given), one per day. Each day gets a warm-up, a core
// practice block and a reflection block sized at 25/50/25 percent of the
// daily minutes, each rounded on its own.
func BuildStudyPlan(in StudyPlanInput) StudyPlan {
	topics := in.FocusTopics
	if len(topics) == 0 {
		topics = []string{in.Subject}
	}

	warmup := round(float64(in.DailyMinutes) * 0.25)
	core := round(float64(in.DailyMinutes) * 0.5)
	reflect := round(float64(in.DailyMinutes) * 0.25)

	plan := make([]StudyPlanDay, 0, max(in.Days, 0))
	for i := 0; i < in.Days; i++ {
		plan = append(plan, StudyPlanDay{
			Day:   i + 1,
			Focus: topics[i%len(topics)],
			Tasks: []string{
				fmt.Sprintf("Warm-up recap (%d min)", warmup),
				fmt.Sprintf("Core practice set (%d min)", core),
				fmt.Sprintf("Reflection notes + formula review (%d min)", reflect),
			},
		})
	}

	return StudyPlan{
		Goal:         fmt.Sprintf("Improve %s fundamentals in %d days", in.Subject, in.Days),
		Days:         in.Days,
		DailyMinutes: in.DailyMinutes,
		Plan:         plan,
	}
}
