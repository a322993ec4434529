package quiz

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/classworks/quiz-gateway/internal/access"
	"github.com/classworks/quiz-gateway/internal/curriculum"
	"github.com/classworks/quiz-gateway/internal/question"
	"github.com/classworks/quiz-gateway/internal/render"
	"github.com/classworks/quiz-gateway/internal/results"
)

// ErrTopicRequired reports a start request without a topic. Fatal to
// initialization; there is nothing to retry.
var ErrTopicRequired = errors.New("topic not provided")

// Identity is the authenticated user a session belongs to.
type Identity struct {
	UserID string
	Email  string
}

// Fetcher loads normalized questions for a topic at a difficulty.
type Fetcher interface {
	Fetch(ctx context.Context, topic, difficulty string) ([]question.Question, error)
}

// Presenter is the view-construction contract the engine drives. Every hook
// is required; there are no optional callbacks.
type Presenter interface {
	Question(q question.Question, number int, selected string, submitted bool) render.QuestionView
	Navigation(index, total int, submitted bool) render.NavView
	Results(score, total int, difficulty string) render.ResultsView
	Review(qs []question.Question, answers map[string]string) []render.ReviewItem
}

// Views satisfies Presenter with package render's pure functions.
type Views struct{}

func (Views) Question(q question.Question, number int, selected string, submitted bool) render.QuestionView {
	return render.Question(q, number, selected, submitted)
}
func (Views) Navigation(index, total int, submitted bool) render.NavView {
	return render.Navigation(index, total, submitted)
}
func (Views) Results(score, total int, difficulty string) render.ResultsView {
	return render.Results(score, total, difficulty)
}
func (Views) Review(qs []question.Question, answers map[string]string) []render.ReviewItem {
	return render.Review(qs, answers)
}

// StartParams carry the URL parameters of a start-quiz request.
type StartParams struct {
	Topic      string // from `table` or `topic`; required
	Difficulty string // coerced to Simple/Medium/Advanced
	ClassID    string
	Subject    string
	Chapter    string
}

// Snapshot is the view description returned by every engine operation:
// either a paywall, a failure banner, the current question, or the results.
type Snapshot struct {
	SessionID string               `json:"session_id,omitempty"`
	Header    string               `json:"header,omitempty"`
	State     State                `json:"state,omitempty"`
	Status    string               `json:"status,omitempty"`
	Paywall   bool                 `json:"paywall,omitempty"`
	Question  *render.QuestionView `json:"question,omitempty"`
	Nav       *render.NavView      `json:"nav,omitempty"`
	Results   *render.ResultsView  `json:"results,omitempty"`
	Breakdown *results.Breakdown   `json:"breakdown,omitempty"`
	Review    []render.ReviewItem  `json:"review,omitempty"`
}

// EngineConfig wires the engine's collaborators. All fields are required
// except Logger.
type EngineConfig struct {
	Sessions   Store
	Fetcher    Fetcher
	Gate       access.Gate
	Recorder   results.Recorder
	Presenter  Presenter
	Curriculum *curriculum.Index

	DefaultClassID string
	DefaultSubject string

	Logger *slog.Logger
}

// Engine is the single controller that owns session mutation.
type Engine struct {
	sessions Store
	fetch    Fetcher
	gate     access.Gate
	recorder results.Recorder
	present  Presenter
	index    *curriculum.Index

	defaultClassID string
	defaultSubject string

	log *slog.Logger
}

func NewEngine(cfg EngineConfig) *Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		sessions:       cfg.Sessions,
		fetch:          cfg.Fetcher,
		gate:           cfg.Gate,
		recorder:       cfg.Recorder,
		present:        cfg.Presenter,
		index:          cfg.Curriculum,
		defaultClassID: cfg.DefaultClassID,
		defaultSubject: cfg.DefaultSubject,
		log:            log,
	}
}

// Start runs the full initialization flow: resolve metadata, check access,
// fetch questions. Access denial produces a paywall snapshot and no session;
// a failed fetch produces a Failed session whose banner message depends on
// whether the query itself broke or just matched nothing.
func (e *Engine) Start(ctx context.Context, user Identity, p StartParams) (Snapshot, error) {
	topic := strings.TrimSpace(p.Topic)
	if topic == "" {
		return Snapshot{}, ErrTopicRequired
	}

	classID := p.ClassID
	if classID == "" {
		classID = e.defaultClassID
	}
	difficulty := question.CoerceDifficulty(p.Difficulty)
	subject, title := e.resolveMeta(topic, p.Subject, p.Chapter)
	header := curriculum.HeaderTitle(classID, subject, title)

	allowed, err := e.gate.Allow(ctx, user.UserID, topic)
	if err != nil {
		e.log.Warn("access check failed", "user", user.UserID, "topic", topic, "error", err)
		allowed = false
	}
	if !allowed {
		return Snapshot{Header: header, Paywall: true}, nil
	}

	s := Session{
		ID:         uuid.NewString(),
		UserID:     user.UserID,
		Email:      user.Email,
		ClassID:    classID,
		Subject:    subject,
		Topic:      topic,
		Difficulty: difficulty,
		Header:     header,
		State:      StateLoading,
	}
	if err := e.sessions.Put(s); err != nil {
		return Snapshot{}, err
	}

	qs, err := e.fetch.Fetch(ctx, topic, difficulty)
	updated, uerr := e.sessions.Update(s.ID, func(s *Session) error {
		switch {
		case err == nil:
			s.SetQuestions(qs)
		case errors.Is(err, question.ErrNoQuestions):
			s.Fail("No questions found for this level.")
		default:
			s.Fail("Error: " + err.Error())
		}
		return nil
	})
	if uerr != nil {
		return Snapshot{}, uerr
	}
	if err != nil && !errors.Is(err, question.ErrNoQuestions) {
		e.log.Error("question fetch failed", "topic", topic, "difficulty", difficulty, "error", err)
	}
	return e.snapshot(updated), nil
}

// resolveMeta backfills subject and chapter title. Explicit URL values win;
// the curriculum lookup is consulted only for what the URL omitted.
func (e *Engine) resolveMeta(topic, subject, chapter string) (string, string) {
	if subject != "" && chapter != "" {
		return subject, chapter
	}
	if m, ok := e.index.Find(topic); ok {
		if subject == "" {
			subject = m.Subject
		}
		if chapter == "" {
			chapter = m.Title
		}
		return subject, chapter
	}
	if subject == "" {
		subject = e.defaultSubject
	}
	if chapter == "" {
		chapter = curriculum.PrettyTitle(topic)
	}
	return subject, chapter
}

// Current returns the snapshot for the session's cursor position.
func (e *Engine) Current(user Identity, sessionID string) (Snapshot, error) {
	s, err := e.owned(user, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return e.snapshot(s), nil
}

// Navigate moves the cursor. Out-of-range deltas leave it unchanged.
func (e *Engine) Navigate(user Identity, sessionID string, delta int) (Snapshot, error) {
	s, err := e.update(user, sessionID, func(s *Session) { s.Navigate(delta) })
	if err != nil {
		return Snapshot{}, err
	}
	return e.snapshot(s), nil
}

// Answer records a choice for a question. A no-op once submitted.
func (e *Engine) Answer(user Identity, sessionID, questionID, choiceKey string) (Snapshot, error) {
	s, err := e.update(user, sessionID, func(s *Session) {
		s.SelectAnswer(questionID, choiceKey)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return e.snapshot(s), nil
}

// Submit finalizes the session and fires the result write in the background.
// Idempotent: a repeat call returns the same results without persisting
// again. A persistence failure is logged and never revealed or reverted.
func (e *Engine) Submit(ctx context.Context, user Identity, sessionID string) (Snapshot, error) {
	var first bool
	s, err := e.update(user, sessionID, func(s *Session) {
		first = s.Submit()
	})
	if err != nil {
		return Snapshot{}, err
	}
	if first {
		rec := buildRecord(s)
		go e.persist(rec)
	}
	return e.snapshot(s), nil
}

func buildRecord(s Session) results.Record {
	total := len(s.Questions)
	pct := 0
	if total > 0 {
		pct = int(float64(s.Score)/float64(total)*100 + 0.5)
	}
	return results.Record{
		UserID:     s.UserID,
		Email:      s.Email,
		ClassID:    s.ClassID,
		Subject:    s.Subject,
		Topic:      s.Topic,
		Difficulty: s.Difficulty,
		Score:      s.Score,
		Total:      total,
		Percentage: pct,
		Breakdown:  s.Breakdown,
		Answers:    s.Answers,
	}
}

func (e *Engine) persist(rec results.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.recorder.Save(ctx, rec); err != nil {
		e.log.Warn("result save failed", "user", rec.UserID, "topic", rec.Topic, "error", err)
	}
}

func (e *Engine) owned(user Identity, sessionID string) (Session, error) {
	s, err := e.sessions.Get(sessionID)
	if err != nil {
		return Session{}, err
	}
	if s.UserID != user.UserID {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (e *Engine) update(user Identity, sessionID string, fn func(*Session)) (Session, error) {
	return e.sessions.Update(sessionID, func(s *Session) error {
		if s.UserID != user.UserID {
			return ErrSessionNotFound
		}
		fn(s)
		return nil
	})
}

func (e *Engine) snapshot(s Session) Snapshot {
	snap := Snapshot{SessionID: s.ID, Header: s.Header, State: s.State}
	switch s.State {
	case StateFailed:
		snap.Status = s.FailureMsg
	case StateReady:
		q := s.Current()
		qv := e.present.Question(q, s.CurrentIndex+1, s.Answers[q.ID], false)
		nav := e.present.Navigation(s.CurrentIndex, len(s.Questions), false)
		snap.Question = &qv
		snap.Nav = &nav
	case StateSubmitted:
		q := s.Current()
		qv := e.present.Question(q, s.CurrentIndex+1, s.Answers[q.ID], true)
		nav := e.present.Navigation(s.CurrentIndex, len(s.Questions), true)
		rv := e.present.Results(s.Score, len(s.Questions), s.Difficulty)
		b := s.Breakdown
		snap.Question = &qv
		snap.Nav = &nav
		snap.Results = &rv
		snap.Breakdown = &b
		snap.Review = e.present.Review(s.Questions, s.Answers)
	}
	return snap
}
