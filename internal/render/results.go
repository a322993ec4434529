package render

import (
	"fmt"
	"strings"

	"github.com/classworks/quiz-gateway/internal/question"
)

type ResultsView struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Difficulty string `json:"difficulty"`
	Title      string `json:"title"`
	Message    string `json:"message"`
}

// Results builds the score summary with its feedback tier.
func Results(score, total int, difficulty string) ResultsView {
	pct := 0
	if total > 0 {
		pct = int(float64(score)/float64(total)*100 + 0.5)
	}
	title := "Keep practicing!"
	switch {
	case pct >= 90:
		title = "Excellent!"
	case pct >= 60:
		title = "Good effort!"
	}
	return ResultsView{
		Score:      score,
		Total:      total,
		Percentage: pct,
		Difficulty: difficulty,
		Title:      title,
		Message:    fmt.Sprintf("You scored %d%%", pct),
	}
}

// ReviewItem is one entry in the post-submission full listing.
type ReviewItem struct {
	Question QuestionView `json:"question"`
	Selected string       `json:"selected,omitempty"`
	Correct  string       `json:"correct"`
	IsRight  bool         `json:"is_right"`
}

// Review lists every question with its selected and correct keys marked.
// Only meaningful after submission, so every view is built submitted.
func Review(questions []question.Question, answers map[string]string) []ReviewItem {
	out := make([]ReviewItem, 0, len(questions))
	for i, q := range questions {
		sel := answers[q.ID]
		out = append(out, ReviewItem{
			Question: Question(q, i+1, sel, true),
			Selected: sel,
			Correct:  q.CorrectKey,
			IsRight:  sel != "" && strings.EqualFold(sel, q.CorrectKey),
		})
	}
	return out
}
