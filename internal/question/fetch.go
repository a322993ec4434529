package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoQuestions reports that the query ran fine but matched zero rows.
// Callers show "no questions at this level" for this, and a generic load
// failure for anything else.
var ErrNoQuestions = errors.New("no questions found for this level")

var tableNameRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// TableName normalizes a topic slug into the bank table it lives in:
// lowercased, whitespace collapsed to underscores.
func TableName(topic string) string {
	t := strings.ToLower(strings.TrimSpace(topic))
	return strings.Join(strings.Fields(t), "_")
}

// Difficulties is the closed set of accepted difficulty labels.
var Difficulties = []string{"Simple", "Medium", "Advanced"}

// CoerceDifficulty validates a difficulty label against the closed set,
// tolerating case differences and embedded whitespace. Anything unrecognized
// (including the empty string) coerces to Simple.
func CoerceDifficulty(s string) string {
	s = strings.Join(strings.Fields(s), "")
	for _, d := range Difficulties {
		if strings.EqualFold(s, d) {
			return d
		}
	}
	return "Simple"
}

// Fetcher loads and normalizes question sets from per-topic bank tables.
// A nil cache disables the read-through layer.
type Fetcher struct {
	db    *sql.DB
	cache *Cache
}

func NewFetcher(db *sql.DB, cache *Cache) *Fetcher {
	return &Fetcher{db: db, cache: cache}
}

// Fetch returns the normalized questions for a topic at a difficulty.
// Difficulty matching is substring containment, not equality: historical rows
// carry invisible whitespace and stray Unicode in the difficulty column, and
// "difficulty contains Medium" still finds them.
func (f *Fetcher) Fetch(ctx context.Context, topic, difficulty string) ([]Question, error) {
	table := TableName(topic)
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid topic %q", topic)
	}
	diff := CoerceDifficulty(difficulty)

	if f.cache != nil {
		if qs, ok := f.cache.Get(ctx, table, diff); ok {
			return qs, nil
		}
	}

	// Table names cannot be bound as parameters; table is validated against
	// a strict identifier pattern above.
	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE LOWER(difficulty) LIKE '%%' || LOWER($1) || '%%'`, table)
	rows, err := f.db.QueryContext(ctx, query, diff)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	raw, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoQuestions
	}

	qs := NormalizeRows(raw)
	slog.Debug("questions fetched", "table", table, "difficulty", diff, "count", len(qs))

	if f.cache != nil {
		f.cache.Put(ctx, table, diff, qs)
	}
	return qs, nil
}

// scanRows reads every row into a column-name map so the normalizer can
// resolve whichever schema revision the table is on.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		for i := range vals {
			vals[i] = new(any)
		}
		if err := rows.Scan(vals...); err != nil {
			return nil, err
		}
		r := make(Row, len(cols))
		for i, c := range cols {
			r[strings.ToLower(c)] = stringify(*vals[i].(*any))
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
