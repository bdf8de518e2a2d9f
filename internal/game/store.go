package game

import (
	"context"
	"time"

	"github.com/guessword/backend/internal/models"
)

// Store is the persistence collaborator the state machine depends on. The
// production implementation is PostgresStore; tests substitute an in-memory
// fake.
type Store interface {
	// ListWords returns the full static word list.
	ListWords(ctx context.Context) ([]models.Word, error)

	// GetWord looks up one word by id.
	GetWord(ctx context.Context, id int) (*models.Word, error)

	// AppendGuess inserts a guess row with the given attempt number and
	// returns the target word. The target lookup and the insert run in a
	// single transaction so the attempt sequence cannot collide under a
	// concurrent double-submission from the same user.
	AppendGuess(ctx context.Context, userID, wordID int, guess string, attempt int) (target string, err error)

	// GuessHistory returns all guesses for (user, word) ordered by attempt.
	GuessHistory(ctx context.Context, userID, wordID int) ([]models.Guess, error)

	// WordsPlayedOn counts the distinct words the user has guessed at on the
	// given calendar day.
	WordsPlayedOn(ctx context.Context, userID int, day time.Time) (int, error)
}
