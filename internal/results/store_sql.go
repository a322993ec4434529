package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/classworks/quiz-gateway/internal/analytics"
)

// SQLRecorder writes quiz_scores rows. created_at is filled by the database,
// so every record carries a server-assigned timestamp.
type SQLRecorder struct {
	db     *sql.DB
	events *analytics.EventLog // optional
}

func NewSQLRecorder(db *sql.DB, events *analytics.EventLog) *SQLRecorder {
	return &SQLRecorder{db: db, events: events}
}

func (r *SQLRecorder) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	bj, err := json.Marshal(rec.Breakdown)
	if err != nil {
		return err
	}
	aj, err := json.Marshal(rec.Answers)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_scores
			(id, user_id, email, class_id, subject, chapter, difficulty,
			 score, total, percentage, breakdown_json, answers_json)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		rec.ID, rec.UserID, rec.Email, rec.ClassID, rec.Subject, rec.Topic,
		rec.Difficulty, rec.Score, rec.Total, rec.Percentage, string(bj), string(aj))
	if err != nil {
		return err
	}

	if r.events != nil {
		if err := r.events.Append(ctx, "quiz_completed", rec.ID, rec); err != nil {
			slog.Warn("analytics append failed", "result_id", rec.ID, "error", err)
		}
	}
	return nil
}
