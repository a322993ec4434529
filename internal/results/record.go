// Package results persists completed quiz attempts.
package results

import "context"

// CategoryStats is the per-question-kind tally computed at submission.
type CategoryStats struct {
	Correct int `json:"c"`
	Wrong   int `json:"w"`
	Total   int `json:"t"`
}

// Breakdown groups the tally by question kind.
type Breakdown struct {
	MCQ  CategoryStats `json:"mcq"`
	AR   CategoryStats `json:"ar"`
	Case CategoryStats `json:"case"`
}

// Record is one persisted quiz result. The store assigns the timestamp.
type Record struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Email      string            `json:"email"`
	ClassID    string            `json:"class_id"`
	Subject    string            `json:"subject"`
	Topic      string            `json:"topic"`
	Difficulty string            `json:"difficulty"`
	Score      int               `json:"score"`
	Total      int               `json:"total"`
	Percentage int               `json:"percentage"`
	Breakdown  Breakdown         `json:"breakdown"`
	Answers    map[string]string `json:"user_answers"`
}

// Recorder writes a result record. Called at most once per submission; a
// failed write is the caller's to log, never to retry or surface.
type Recorder interface {
	Save(ctx context.Context, rec Record) error
}
