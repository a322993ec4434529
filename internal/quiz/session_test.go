package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classworks/quiz-gateway/internal/question"
)

func threeQuestions() []question.Question {
	return []question.Question{
		{ID: "q1", Kind: question.KindPlain, CorrectKey: "A",
			Options: question.Options{A: "a", B: "b", C: "c", D: "d"}},
		{ID: "q2", Kind: question.KindAssertionReason, CorrectKey: "B"},
		{ID: "q3", Kind: question.KindCase, CorrectKey: "C",
			Options: question.Options{A: "a", B: "b", C: "c", D: "d"}},
	}
}

func readySession() Session {
	s := Session{ID: "s1", State: StateLoading}
	s.SetQuestions(threeQuestions())
	return s
}

func TestSetQuestions_InitializesEveryAnswerSlot(t *testing.T) {
	s := readySession()
	assert.Equal(t, StateReady, s.State)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Len(t, s.Answers, len(s.Questions))
	for _, q := range s.Questions {
		v, ok := s.Answers[q.ID]
		assert.True(t, ok)
		assert.Equal(t, Unanswered, v)
	}
}

func TestNavigate_ClampsToRange(t *testing.T) {
	s := readySession()

	s.Navigate(-1)
	assert.Equal(t, 0, s.CurrentIndex, "cannot move before first")

	s.Navigate(1)
	assert.Equal(t, 1, s.CurrentIndex)
	s.Navigate(1)
	assert.Equal(t, 2, s.CurrentIndex)

	for i := 0; i < 5; i++ {
		s.Navigate(1)
	}
	assert.Equal(t, 2, s.CurrentIndex, "repeated next at last index is ignored")

	s.Navigate(-10)
	assert.Equal(t, 2, s.CurrentIndex, "out-of-range jumps are rejected, not wrapped")
}

func TestSelectAnswer(t *testing.T) {
	s := readySession()

	s.SelectAnswer("q1", "b")
	assert.Equal(t, "B", s.Answers["q1"], "keys are uppercased")

	s.SelectAnswer("unknown", "A")
	assert.Len(t, s.Answers, 3, "unknown question ids are ignored")
}

func TestSelectAnswer_NoOpAfterSubmit(t *testing.T) {
	s := readySession()
	s.SelectAnswer("q1", "A")
	assert.True(t, s.Submit())

	before := s.Answers["q2"]
	s.SelectAnswer("q2", "B")
	assert.Equal(t, before, s.Answers["q2"])
}

func TestSubmit_Scores(t *testing.T) {
	s := readySession()
	s.SelectAnswer("q1", "A") // right
	s.SelectAnswer("q2", "b") // right, case-insensitive
	// q3 unanswered

	assert.True(t, s.Submit())
	assert.Equal(t, StateSubmitted, s.State)
	assert.Equal(t, 2, s.Score)

	assert.Equal(t, 1, s.Breakdown.MCQ.Correct)
	assert.Equal(t, 1, s.Breakdown.AR.Correct)
	assert.Equal(t, 1, s.Breakdown.Case.Wrong)
	assert.Equal(t, 1, s.Breakdown.Case.Total)
}

func TestSubmit_Idempotent(t *testing.T) {
	s := readySession()
	s.SelectAnswer("q1", "A")
	assert.True(t, s.Submit())
	score := s.Score

	assert.False(t, s.Submit(), "second submit is a no-op")
	assert.Equal(t, score, s.Score)
}

func TestSubmit_NotReadyIsNoOp(t *testing.T) {
	s := Session{State: StateLoading}
	assert.False(t, s.Submit())
	assert.Equal(t, StateLoading, s.State)
}

func TestNavigate_AllowedAfterSubmitForReview(t *testing.T) {
	s := readySession()
	s.Submit()
	s.Navigate(1)
	assert.Equal(t, 1, s.CurrentIndex)
}

func TestScoreAnswers_UnansweredNeverMatches(t *testing.T) {
	qs := []question.Question{{ID: "q1", Kind: question.KindPlain, CorrectKey: ""}}
	score, _ := ScoreAnswers(qs, map[string]string{"q1": Unanswered})
	assert.Equal(t, 0, score, "empty answer must not match an empty key")
}
