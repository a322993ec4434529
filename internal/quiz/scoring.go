package quiz

import (
	"strings"

	"github.com/classworks/quiz-gateway/internal/question"
	"github.com/classworks/quiz-gateway/internal/results"
)

// ScoreAnswers counts correct answers and tallies them per question kind.
// Keys compare case-insensitively; the unanswered sentinel never matches.
func ScoreAnswers(qs []question.Question, answers map[string]string) (int, results.Breakdown) {
	var b results.Breakdown
	score := 0
	for _, q := range qs {
		ans := answers[q.ID]
		right := ans != Unanswered && strings.EqualFold(ans, q.CorrectKey)
		if right {
			score++
		}

		var cat *results.CategoryStats
		switch q.Kind {
		case question.KindAssertionReason:
			cat = &b.AR
		case question.KindCase:
			cat = &b.Case
		default:
			cat = &b.MCQ
		}
		cat.Total++
		if right {
			cat.Correct++
		} else {
			cat.Wrong++
		}
	}
	return score, b
}
