package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/classworks/quiz-gateway/internal/curriculum"
	"github.com/classworks/quiz-gateway/internal/quiz"
)

// Mount attaches the quiz API to a router. Callers wrap the router with
// whatever auth middleware the deployment needs.
func Mount(r chi.Router, e *quiz.Engine, idx *curriculum.Index) {
	r.Get("/curriculum", CurriculumHandler(idx))

	r.Post("/quiz", StartQuizHandler(e))
	r.Route("/quiz/{sessionID}", func(sr chi.Router) {
		sr.Get("/", CurrentQuestionHandler(e))
		sr.Post("/navigate", NavigateHandler(e))
		sr.Post("/answer", AnswerHandler(e))
		sr.Post("/submit", SubmitHandler(e))
	})
}
