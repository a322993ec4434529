package http

import (
	"net/http"

	"github.com/classworks/quiz-gateway/internal/curriculum"
)

// CurriculumHandler serves the static chapter index for chapter-selection
// pages.
func CurriculumHandler(idx *curriculum.Index) http.HandlerFunc {
	type payload struct {
		ClassID  string                                     `json:"class_id"`
		Subjects map[string]map[string][]curriculum.Chapter `json:"subjects"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, payload{ClassID: idx.ClassID, Subjects: idx.Subjects})
	}
}
