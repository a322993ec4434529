package question

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestTableName(t *testing.T) {
	assert.Equal(t, "force_and_pressure", TableName("Force and Pressure"))
	assert.Equal(t, "friction_quiz", TableName("  friction_quiz "))
}

func TestCoerceDifficulty(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Simple", "Simple"},
		{"medium", "Medium"},
		{"ADVANCED", "Advanced"},
		{" Med ium ", "Medium"},
		{"", "Simple"},
		{"Impossible", "Simple"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CoerceDifficulty(tt.in), "input %q", tt.in)
	}
}

func openBankDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE force_and_pressure (
		id INTEGER PRIMARY KEY,
		question_text TEXT,
		question_type TEXT,
		scenario_reason_text TEXT,
		option_a TEXT, option_b TEXT, option_c TEXT, option_d TEXT,
		correct_answer_key TEXT,
		difficulty TEXT
	)`)
	require.NoError(t, err)
	return db
}

func seedPlain(t *testing.T, db *sql.DB, id int, text, difficulty string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO force_and_pressure
		(id, question_text, question_type, option_a, option_b, option_c, option_d, correct_answer_key, difficulty)
		VALUES ($1,$2,'mcq','a1','b1','c1','d1','B',$3)`, id, text, difficulty)
	require.NoError(t, err)
}

func TestFetch(t *testing.T) {
	db := openBankDB(t)
	seedPlain(t, db, 1, "Q one", "Simple")
	seedPlain(t, db, 2, "Q two", "Simple ")    // trailing whitespace in data
	seedPlain(t, db, 3, "Q three", "Advanced")

	f := NewFetcher(db, nil)
	qs, err := f.Fetch(context.Background(), "Force and Pressure", "")
	require.NoError(t, err)

	// Default difficulty is Simple; substring matching picks up the row
	// whose difficulty carries stray whitespace.
	require.Len(t, qs, 2)
	assert.Equal(t, "1", qs[0].ID)
	assert.Equal(t, "Q one", qs[0].Prompt)
	assert.Equal(t, KindPlain, qs[0].Kind)
	assert.Equal(t, "B", qs[0].CorrectKey)
}

func TestFetch_EmptyResultIsDistinctError(t *testing.T) {
	db := openBankDB(t)
	seedPlain(t, db, 1, "Q one", "Simple")

	f := NewFetcher(db, nil)
	_, err := f.Fetch(context.Background(), "force_and_pressure", "Medium")
	assert.True(t, errors.Is(err, ErrNoQuestions))
}

func TestFetch_QueryErrorIsNotEmptyResult(t *testing.T) {
	db := openBankDB(t)
	f := NewFetcher(db, nil)
	_, err := f.Fetch(context.Background(), "no_such_table", "Simple")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoQuestions))
}

func TestFetch_RejectsUnsafeTopic(t *testing.T) {
	db := openBankDB(t)
	f := NewFetcher(db, nil)
	_, err := f.Fetch(context.Background(), "bad;drop", "Simple")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoQuestions))
}
