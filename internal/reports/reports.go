// Package reports computes the admin reporting projections over the persisted
// guess log. Both reports are read-only: the SQL layer fetches joined rows and
// the pure aggregation functions reduce them, so the counting logic is
// testable without a database.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/guessword/backend/internal/models"
)

// Daily returns the report for one server-local calendar day: distinct users
// who played, distinct words tried, and guess events matching the target.
func Daily(ctx context.Context, db *sqlx.DB, day time.Time) (DailySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var events []GuessEvent
	err := db.SelectContext(ctx, &events, `
		SELECT g.user_id, g.word_id, g.guess, w.word AS target, g.date
		FROM guesses g
		JOIN words w ON g.word_id = w.id
		WHERE g.date >= $1 AND g.date < $2
	`, start, end)
	if err != nil {
		return DailySummary{}, fmt.Errorf("failed to fetch daily guesses: %w", err)
	}

	return SummarizeDay(start, events), nil
}

// Users returns the all-time per-player report, newest registrations first.
// Admin accounts are excluded.
func Users(ctx context.Context, db *sqlx.DB) ([]UserSummary, error) {
	var players []PlayerRecord
	err := db.SelectContext(ctx, &players, `
		SELECT id, username, date_registered
		FROM users
		WHERE role = $1
		ORDER BY date_registered DESC
	`, models.RolePlayer)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}

	var events []GuessEvent
	err = db.SelectContext(ctx, &events, `
		SELECT g.user_id, g.word_id, g.guess, w.word AS target, g.date
		FROM guesses g
		JOIN words w ON g.word_id = w.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guesses: %w", err)
	}

	return SummarizeUsers(players, events), nil
}
