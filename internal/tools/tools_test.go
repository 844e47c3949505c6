package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/stemcoach/internal/topicpack"
)

func TestScoreQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []QuizAnswer
		want    QuizScore
	}{
		{
			name:    "empty",
			answers: nil,
			want:    QuizScore{IncorrectQuestionIDs: []string{}},
		},
		{
			name: "three of four",
			answers: []QuizAnswer{
				{QuestionID: "q1", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "q2", SelectedIndex: 2, CorrectIndex: 1},
				{QuestionID: "q3", SelectedIndex: 3, CorrectIndex: 3},
				{QuestionID: "q4", SelectedIndex: 1, CorrectIndex: 1},
			},
			want: QuizScore{Total: 4, Correct: 3, Accuracy: 75, IncorrectQuestionIDs: []string{"q2"}},
		},
		{
			name: "incorrect ids keep input order",
			answers: []QuizAnswer{
				{QuestionID: "z", SelectedIndex: 1, CorrectIndex: 0},
				{QuestionID: "a", SelectedIndex: -1, CorrectIndex: 0},
				{QuestionID: "m", SelectedIndex: 0, CorrectIndex: 0},
			},
			want: QuizScore{Total: 3, Correct: 1, Accuracy: 33, IncorrectQuestionIDs: []string{"z", "a"}},
		},
		{
			name: "two of three rounds up",
			answers: []QuizAnswer{
				{QuestionID: "a", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "b", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "c", SelectedIndex: 1, CorrectIndex: 0},
			},
			want: QuizScore{Total: 3, Correct: 2, Accuracy: 67, IncorrectQuestionIDs: []string{"c"}},
		},
		{
			name: "half rounds up",
			answers: []QuizAnswer{
				{QuestionID: "a", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "b", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "c", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "d", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "e", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "f", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "g", SelectedIndex: 0, CorrectIndex: 0},
				{QuestionID: "h", SelectedIndex: 1, CorrectIndex: 0},
			},
			want: QuizScore{Total: 8, Correct: 7, Accuracy: 88, IncorrectQuestionIDs: []string{"h"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreQuiz(tt.answers))
		})
	}
}

func TestBuildStudyPlan_Cycling(t *testing.T) {
	got := BuildStudyPlan(StudyPlanInput{
		Subject:      "Physics",
		FocusTopics:  []string{"A", "B"},
		Days:         5,
		DailyMinutes: 60,
	})

	assert.Equal(t, "Improve Physics fundamentals in 5 days", got.Goal)
	assert.Equal(t, 5, got.Days)
	assert.Equal(t, 60, got.DailyMinutes)

	var foci []string
	for i, d := range got.Plan {
		assert.Equal(t, i+1, d.Day)
		foci = append(foci, d.Focus)
		assert.Equal(t, []string{
			"Warm-up recap (15 min)",
			"Core practice set (30 min)",
			"Reflection notes + formula review (15 min)",
		}, d.Tasks)
	}
	assert.Equal(t, []string{"A", "B", "A", "B", "A"}, foci)
}

func TestBuildStudyPlan_NoTopicsUsesSubject(t *testing.T) {
	got := BuildStudyPlan(StudyPlanInput{Subject: "Chemistry", Days: 2, DailyMinutes: 45})

	assert.Len(t, got.Plan, 2)
	for _, d := range got.Plan {
		assert.Equal(t, "Chemistry", d.Focus)
	}
}

func TestBuildStudyPlan_IndependentRounding(t *testing.T) {
	// 50 minutes: 12.5 -> 13, 25, 12.5 -> 13. The blocks add up to 51.
	got := BuildStudyPlan(StudyPlanInput{Subject: "Math", Days: 1, DailyMinutes: 50})
	assert.Equal(t, []string{
		"Warm-up recap (13 min)",
		"Core practice set (25 min)",
		"Reflection notes + formula review (13 min)",
	}, got.Plan[0].Tasks)
}

func TestBuildStudyPlan_ZeroDays(t *testing.T) {
	got := BuildStudyPlan(StudyPlanInput{Subject: "Math", Days: 0, DailyMinutes: 30})
	assert.NotNil(t, got.Plan)
	assert.Empty(t, got.Plan)
}

func TestBuildProgressSignal(t *testing.T) {
	tests := []struct {
		in      ProgressSignalInput
		level   MasteryLevel
		target  string
		tipHigh bool
	}{
		{ProgressSignalInput{RecentAccuracy: 90, StreakDays: 5, MinutesStudiedThisWeek: 200}, ExamReady, targetExamReady, true},
		{ProgressSignalInput{RecentAccuracy: 85, StreakDays: 4, MinutesStudiedThisWeek: 180}, Accelerating, targetDefault, true},
		{ProgressSignalInput{RecentAccuracy: 70, StreakDays: 0, MinutesStudiedThisWeek: 179}, Accelerating, targetDefault, false},
		{ProgressSignalInput{RecentAccuracy: 69.9, StreakDays: 10}, Steady, targetDefault, false},
		{ProgressSignalInput{RecentAccuracy: 55}, Steady, targetDefault, false},
		{ProgressSignalInput{RecentAccuracy: 54}, Starter, targetDefault, false},
	}

	for _, tt := range tests {
		got := BuildProgressSignal(tt.in)
		if got.MasteryLevel != tt.level {
			t.Errorf("BuildProgressSignal(%+v).MasteryLevel = %s, want %s", tt.in, got.MasteryLevel, tt.level)
		}
		if got.NextTarget != tt.target {
			t.Errorf("BuildProgressSignal(%+v).NextTarget = %q, want %q", tt.in, got.NextTarget, tt.target)
		}
		wantTip := tipLowMinutes
		if tt.tipHigh {
			wantTip = tipHighMinutes
		}
		if got.CoachingTip != wantTip {
			t.Errorf("BuildProgressSignal(%+v).CoachingTip = %q, want %q", tt.in, got.CoachingTip, wantTip)
		}
	}
}

func TestGetStemTopicPack(t *testing.T) {
	got := GetStemTopicPack(topicpack.Chemistry)
	assert.Equal(t, "Chemistry", got.Subject)
	assert.Len(t, got.Topics, 18)
	assert.Equal(t, "Atomic Structure & Periodicity", got.Topics[0])

	unknown := GetStemTopicPack("Biology")
	assert.NotNil(t, unknown.Topics)
	assert.Empty(t, unknown.Topics)
}
