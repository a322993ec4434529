// Package http exposes the quiz engine over a JSON API. The shapes returned
// here are render-layer view descriptions; scoring and state live in the
// quiz package.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/classworks/quiz-gateway/internal/auth"
	"github.com/classworks/quiz-gateway/internal/quiz"
)

// banner is the status-message payload clients show in the status area.
type banner struct {
	Message string `json:"message"`
	Tone    string `json:"tone"` // info|error|warning
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBanner(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, banner{Message: msg, Tone: "error"})
}

func identity(r *http.Request) quiz.Identity {
	return quiz.Identity{
		UserID: auth.SubjectFromContext(r.Context()),
		Email:  auth.EmailFromContext(r.Context()),
	}
}
