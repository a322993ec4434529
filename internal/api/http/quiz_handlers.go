package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/classworks/quiz-gateway/internal/quiz"
)

// StartQuizHandler begins a session from URL query parameters:
// table|topic (required), difficulty, class, subject, chapter.
func StartQuizHandler(e *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		topic := q.Get("table")
		if topic == "" {
			topic = q.Get("topic")
		}
		snap, err := e.Start(r.Context(), identity(r), quiz.StartParams{
			Topic:      topic,
			Difficulty: q.Get("difficulty"),
			ClassID:    q.Get("class"),
			Subject:    q.Get("subject"),
			Chapter:    q.Get("chapter"),
		})
		if errors.Is(err, quiz.ErrTopicRequired) {
			writeBanner(w, http.StatusBadRequest, "Topic not provided")
			return
		}
		if err != nil {
			writeBanner(w, http.StatusInternalServerError, "Error: could not start quiz")
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// CurrentQuestionHandler returns the session's current view.
func CurrentQuestionHandler(e *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := e.Current(identity(r), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// NavigateHandler moves the cursor by a signed delta.
func NavigateHandler(e *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Delta int `json:"delta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBanner(w, http.StatusBadRequest, "bad json")
			return
		}
		snap, err := e.Navigate(identity(r), chi.URLParam(r, "sessionID"), req.Delta)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// AnswerHandler records a choice for one question.
func AnswerHandler(e *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionID string `json:"question_id"`
			Key        string `json:"key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBanner(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.QuestionID == "" {
			writeBanner(w, http.StatusBadRequest, "question_id required")
			return
		}
		snap, err := e.Answer(identity(r), chi.URLParam(r, "sessionID"), req.QuestionID, req.Key)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// SubmitHandler finalizes the session and returns results plus the full
// review listing.
func SubmitHandler(e *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := e.Submit(r.Context(), identity(r), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, quiz.ErrSessionNotFound) {
		writeBanner(w, http.StatusNotFound, "session not found")
		return
	}
	writeBanner(w, http.StatusInternalServerError, "Error: "+err.Error())
}
