// Package quiz owns the per-attempt session state machine and the controller
// that drives it. A session is mutated only through its store's Update,
// which gives single-writer discipline over the one shared object.
package quiz

import (
	"strings"

	"github.com/classworks/quiz-gateway/internal/question"
	"github.com/classworks/quiz-gateway/internal/results"
)

type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateSubmitted State = "submitted"
	StateFailed    State = "failed"
)

// Unanswered is the sentinel stored for a question the user has not answered.
// It never compares equal to a choice key.
const Unanswered = ""

// Session is one quiz attempt. Questions are fixed once fetched; Answers has
// one entry per question for the whole Ready lifetime.
type Session struct {
	ID     string
	UserID string
	Email  string

	ClassID    string
	Subject    string
	Topic      string
	Difficulty string
	Header     string

	State      State
	FailureMsg string // set when State is StateFailed

	Questions    []question.Question
	CurrentIndex int
	Answers      map[string]string

	Score     int
	Breakdown results.Breakdown
}

// SetQuestions moves Loading→Ready, initializing every answer slot to the
// unanswered sentinel.
func (s *Session) SetQuestions(qs []question.Question) {
	s.Questions = qs
	s.Answers = make(map[string]string, len(qs))
	for _, q := range qs {
		s.Answers[q.ID] = Unanswered
	}
	s.CurrentIndex = 0
	s.State = StateReady
}

// Fail moves Loading→Failed. Terminal.
func (s *Session) Fail(msg string) {
	s.State = StateFailed
	s.FailureMsg = msg
}

// SelectAnswer records a choice. Silently ignored once submitted, and for
// question ids outside the session.
func (s *Session) SelectAnswer(questionID, choiceKey string) {
	if s.State != StateReady {
		return
	}
	if _, ok := s.Answers[questionID]; !ok {
		return
	}
	s.Answers[questionID] = strings.ToUpper(strings.TrimSpace(choiceKey))
}

// Navigate moves the cursor by delta. Moves that would leave
// [0, len(questions)-1] are ignored, not clamped to the boundary and not
// wrapped.
func (s *Session) Navigate(delta int) {
	if s.State != StateReady && s.State != StateSubmitted {
		return
	}
	i := s.CurrentIndex + delta
	if i >= 0 && i < len(s.Questions) {
		s.CurrentIndex = i
	}
}

// Submit finalizes the session: Ready→Submitted, scoring every question.
// Returns false when the session was already submitted (or not Ready), in
// which case nothing changes.
func (s *Session) Submit() bool {
	if s.State != StateReady {
		return false
	}
	s.State = StateSubmitted
	s.Score, s.Breakdown = ScoreAnswers(s.Questions, s.Answers)
	return true
}

// Current returns the question under the cursor.
func (s *Session) Current() question.Question {
	return s.Questions[s.CurrentIndex]
}

// clone returns a copy safe to read outside the store's lock. Answers is the
// only mutable reference field; Questions is fixed after SetQuestions, so the
// slice header can be shared.
func (s Session) clone() Session {
	c := s
	if s.Answers != nil {
		c.Answers = make(map[string]string, len(s.Answers))
		for k, v := range s.Answers {
			c.Answers[k] = v
		}
	}
	return c
}
