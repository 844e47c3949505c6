// Package tools implements the deterministic study tools an agent can call:
// quiz scoring, study plans, progress signals and topic packs.
package tools

import "math"

// QuizAnswer is one answered question. SelectedIndex is -1 when the
// learner skipped the question.
type QuizAnswer struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
	CorrectIndex  int    `json:"correctIndex"`
}

// ScoreQuizInput is the scoreQuiz tool input.
type ScoreQuizInput struct {
	Answers []QuizAnswer `json:"answers"`
}

// QuizScore is the scoreQuiz tool output.
type QuizScore struct {
	Total                int      `json:"total"`
	Correct              int      `json:"correct"`
	Accuracy             int      `json:"accuracy"`
	IncorrectQuestionIDs []string `json:"incorrectQuestionIds"`
}

// ScoreQuiz counts correct answers and lists the ids of the rest in input
// order. Accuracy is a rounded percentage, 0 for an empty quiz.
func ScoreQuiz(answers []QuizAnswer) QuizScore {
	res := QuizScore{Total: len(answers), IncorrectQuestionIDs: []string{}}
	for _, a := range answers {
		if a.SelectedIndex == a.CorrectIndex {
			res.Correct++
		} else {
			res.IncorrectQuestionIDs = append(res.IncorrectQuestionIDs, a.QuestionID)
		}
	}
	if res.Total > 0 {
		res.Accuracy = round(float64(res.Correct) / float64(res.Total) * 100)
	}
	return res
}

// round rounds half up, so 2.5 becomes 3 and -2.5 becomes -2.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
