package game

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/guessword/backend/internal/models"
)

// PostgresStore implements Store on the shared sqlx connection pool.
type PostgresStore struct {
	db *sqlx.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a Store backed by PostgreSQL.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListWords(ctx context.Context) ([]models.Word, error) {
	var words []models.Word
	if err := s.db.SelectContext(ctx, &words, `SELECT id, word FROM words ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

func (s *PostgresStore) GetWord(ctx context.Context, id int) (*models.Word, error) {
	var word models.Word
	if err := s.db.GetContext(ctx, &word, `SELECT id, word FROM words WHERE id=$1`, id); err != nil {
		return nil, fmt.Errorf("failed to get word %d: %w", id, err)
	}
	return &word, nil
}

// AppendGuess reads the target and inserts the guess row inside one
// transaction. Two tabs racing on the same session would otherwise both read
// the same attempt count and write a duplicate attempt number; the unique
// (user_id, word_id, attempt_number) constraint makes the loser fail instead.
func (s *PostgresStore) AppendGuess(ctx context.Context, userID, wordID int, guess string, attempt int) (string, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin tx: %w", err)
	}

	var target string
	if err := tx.GetContext(ctx, &target, `SELECT word FROM words WHERE id=$1`, wordID); err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("word %d not found", wordID)
		}
		return "", fmt.Errorf("failed to read target word: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO guesses (user_id, word_id, guess, attempt_number, date)
		VALUES ($1, $2, $3, $4, NOW())
	`, userID, wordID, guess, attempt); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to record guess: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit guess: %w", err)
	}
	return target, nil
}

func (s *PostgresStore) GuessHistory(ctx context.Context, userID, wordID int) ([]models.Guess, error) {
	var guesses []models.Guess
	err := s.db.SelectContext(ctx, &guesses, `
		SELECT id, user_id, word_id, guess, attempt_number, date
		FROM guesses
		WHERE user_id=$1 AND word_id=$2
		ORDER BY attempt_number
	`, userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guess history: %w", err)
	}
	return guesses, nil
}

// WordsPlayedOn counts distinct word ids in the user's guesses on the given
// server-local calendar day.
func (s *PostgresStore) WordsPlayedOn(ctx context.Context, userID int, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(DISTINCT word_id)
		FROM guesses
		WHERE user_id=$1 AND date >= $2 AND date < $3
	`, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to count words played: %w", err)
	}
	return count, nil
}
