package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/classworks/quiz-gateway/internal/access"
	"github.com/classworks/quiz-gateway/internal/analytics"
	api "github.com/classworks/quiz-gateway/internal/api/http"
	"github.com/classworks/quiz-gateway/internal/auth"
	"github.com/classworks/quiz-gateway/internal/config"
	"github.com/classworks/quiz-gateway/internal/curriculum"
	"github.com/classworks/quiz-gateway/internal/db"
	"github.com/classworks/quiz-gateway/internal/question"
	"github.com/classworks/quiz-gateway/internal/quiz"
	"github.com/classworks/quiz-gateway/internal/results"
)

func main() {
	cfg := config.FromEnv()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Error("db open failed", "error", err)
		os.Exit(1)
	}

	// --- Optional question cache ---
	var cache *question.Cache
	if cfg.CacheURL != "" {
		cache, err = question.NewCache(ctx, cfg.CacheURL, 10*time.Minute)
		if err != nil {
			log.Warn("question cache unavailable, continuing without it", "error", err)
			cache = nil
		}
	}

	// --- Curriculum ---
	idx, err := curriculum.Load(cfg.DefaultClassID)
	if err != nil {
		log.Error("curriculum load failed", "error", err)
		os.Exit(1)
	}

	// --- Access gate ---
	var gate access.Gate = access.AllowAll{}
	if cfg.EnableAccessGate {
		gate = access.NewSQLGate(dbh)
	}

	// --- Engine ---
	engine := quiz.NewEngine(quiz.EngineConfig{
		Sessions:       quiz.NewInMemoryStore(),
		Fetcher:        question.NewFetcher(dbh, cache),
		Gate:           gate,
		Recorder:       results.NewSQLRecorder(dbh, analytics.NewEventLog(dbh)),
		Presenter:      quiz.Views{},
		Curriculum:     idx,
		DefaultClassID: cfg.DefaultClassID,
		DefaultSubject: cfg.DefaultSubject,
		Logger:         log,
	})

	authSvc := auth.NewService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))
	}

	// Protected quiz API
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		api.Mount(pr, engine, idx)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("quiz gateway listening", "addr", cfg.HTTPAddr, "mode", string(cfg.Mode))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
