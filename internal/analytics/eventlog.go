// Package analytics appends app events to the shared event_log table.
// Best-effort: callers treat append failures as log-only.
package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

type EventLog struct{ db *sql.DB }

func NewEventLog(db *sql.DB) *EventLog { return &EventLog{db: db} }

// Append records one event. Data is marshaled to JSON.
func (l *EventLog) Append(ctx context.Context, typ, key string, data any) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		typ, key, string(buf), time.Now().Unix())
	return err
}
