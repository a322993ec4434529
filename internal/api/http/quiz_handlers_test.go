package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classworks/quiz-gateway/internal/access"
	"github.com/classworks/quiz-gateway/internal/auth"
	"github.com/classworks/quiz-gateway/internal/curriculum"
	"github.com/classworks/quiz-gateway/internal/question"
	"github.com/classworks/quiz-gateway/internal/quiz"
	"github.com/classworks/quiz-gateway/internal/results"
)

type stubFetcher struct{ qs []question.Question }

func (f *stubFetcher) Fetch(context.Context, string, string) ([]question.Question, error) {
	return f.qs, nil
}

type stubRecorder struct{}

func (stubRecorder) Save(context.Context, results.Record) error { return nil }

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	idx, err := curriculum.Load("8")
	require.NoError(t, err)

	e := quiz.NewEngine(quiz.EngineConfig{
		Sessions: quiz.NewInMemoryStore(),
		Fetcher: &stubFetcher{qs: []question.Question{
			{ID: "q1", Kind: question.KindPlain, Prompt: "P1",
				Options: question.Options{A: "1", B: "2", C: "3", D: "4"}, CorrectKey: "A"},
			{ID: "q2", Kind: question.KindPlain, Prompt: "P2",
				Options: question.Options{A: "1", B: "2", C: "3", D: "4"}, CorrectKey: "B"},
		}},
		Gate:           access.AllowAll{},
		Recorder:       stubRecorder{},
		Presenter:      quiz.Views{},
		Curriculum:     idx,
		DefaultClassID: "8",
		DefaultSubject: "General",
	})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithSubject(req.Context(), "student-1")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	Mount(r, e, idx)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func decodeSnap(t *testing.T, resp *http.Response) quiz.Snapshot {
	t.Helper()
	defer resp.Body.Close()
	var snap quiz.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

func TestStartQuiz_MissingTopic(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Post(srv.URL+"/quiz", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var b banner
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	assert.Equal(t, "Topic not provided", b.Message)
}

func TestQuizFlow(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/quiz?table=friction&difficulty=Simple", "application/json", nil)
	require.NoError(t, err)
	snap := decodeSnap(t, resp)
	require.Equal(t, quiz.StateReady, snap.State)
	require.NotEmpty(t, snap.SessionID)
	base := srv.URL + "/quiz/" + snap.SessionID

	// answer question 1
	body, _ := json.Marshal(map[string]string{"question_id": "q1", "key": "A"})
	resp, err = http.Post(base+"/answer", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	decodeSnap(t, resp)

	// next question
	body, _ = json.Marshal(map[string]int{"delta": 1})
	resp, err = http.Post(base+"/navigate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	snap = decodeSnap(t, resp)
	assert.Equal(t, 2, snap.Question.Number)

	// submit
	resp, err = http.Post(base+"/submit", "application/json", nil)
	require.NoError(t, err)
	snap = decodeSnap(t, resp)
	require.Equal(t, quiz.StateSubmitted, snap.State)
	assert.Equal(t, 1, snap.Results.Score)
	assert.Equal(t, 2, snap.Results.Total)
	assert.Len(t, snap.Review, 2)
}

func TestCurrent_UnknownSession(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/quiz/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCurriculumEndpoint(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/curriculum")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		ClassID  string `json:"class_id"`
		Subjects map[string]map[string][]curriculum.Chapter
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "8", payload.ClassID)
	assert.NotEmpty(t, payload.Subjects["Science"]["Physics"])
}
