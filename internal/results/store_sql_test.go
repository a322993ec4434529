package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classworks/quiz-gateway/internal/analytics"
	"github.com/classworks/quiz-gateway/internal/db"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	h, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	h.SetMaxOpenConns(1)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestSQLRecorder_Save(t *testing.T) {
	h := openDB(t)
	rec := Record{
		UserID:     "u1",
		Email:      "u1@example.com",
		ClassID:    "8",
		Subject:    "Science",
		Topic:      "force_and_pressure",
		Difficulty: "Simple",
		Score:      3,
		Total:      3,
		Percentage: 100,
		Breakdown:  Breakdown{MCQ: CategoryStats{Correct: 3, Total: 3}},
		Answers:    map[string]string{"q1": "A", "q2": "B", "q3": "C"},
	}

	r := NewSQLRecorder(h, analytics.NewEventLog(h))
	require.NoError(t, r.Save(context.Background(), rec))

	var (
		n       int
		bj, aj  string
		created string
	)
	require.NoError(t, h.QueryRow(
		`SELECT count(*) FROM quiz_scores`).Scan(&n))
	assert.Equal(t, 1, n)

	require.NoError(t, h.QueryRow(
		`SELECT breakdown_json, answers_json, created_at FROM quiz_scores`).
		Scan(&bj, &aj, &created))
	assert.NotEmpty(t, created) // server-assigned timestamp

	var b Breakdown
	require.NoError(t, json.Unmarshal([]byte(bj), &b))
	assert.Equal(t, 3, b.MCQ.Correct)

	var answers map[string]string
	require.NoError(t, json.Unmarshal([]byte(aj), &answers))
	assert.Equal(t, "A", answers["q1"])

	// quiz_completed event appended alongside the row
	require.NoError(t, h.QueryRow(
		`SELECT count(*) FROM event_log WHERE typ='quiz_completed'`).Scan(&n))
	assert.Equal(t, 1, n)
}
