// Package access decides whether an identity may run a given quiz topic.
// A denial is not an error: callers route it to the paywall view.
package access

import (
	"context"
	"database/sql"
	"strings"
)

// Gate answers "may this user view this topic". An empty user id is always
// denied; implementations never have to handle anonymous access specially.
type Gate interface {
	Allow(ctx context.Context, userID, topic string) (bool, error)
}

// AllowAll grants every signed-in user every topic. Used when gating is
// disabled by configuration.
type AllowAll struct{}

func (AllowAll) Allow(_ context.Context, userID, _ string) (bool, error) {
	return userID != "", nil
}

// SQLGate checks the entitlements table. A pattern is an exact topic slug,
// a prefix glob like "science_*", or "*" for everything.
type SQLGate struct{ db *sql.DB }

func NewSQLGate(db *sql.DB) *SQLGate { return &SQLGate{db: db} }

func (g *SQLGate) Allow(ctx context.Context, userID, topic string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	rows, err := g.db.QueryContext(ctx,
		`SELECT topic_pattern FROM entitlements WHERE user_id=$1`, userID)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var pattern string
		if err := rows.Scan(&pattern); err != nil {
			return false, err
		}
		if matchTopic(pattern, topic) {
			return true, nil
		}
	}
	return false, rows.Err()
}

func matchTopic(pattern, topic string) bool {
	if pattern == "*" || pattern == topic {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(topic, strings.TrimSuffix(pattern, "*"))
	}
	return false
}
