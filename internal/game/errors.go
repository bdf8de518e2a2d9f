package game

import (
	"errors"
	"fmt"
)

// Expected, recoverable gameplay errors. A rejected operation never mutates
// session or persisted state.
var (
	// ErrInvalidGuessFormat means the guess was not exactly five letters.
	ErrInvalidGuessFormat = errors.New("guess must be exactly 5 letters")

	// ErrNoActiveGame means a guess was submitted with no game in progress.
	ErrNoActiveGame = errors.New("no active game; start a new game first")

	// ErrGameOver means the current game already ended in a win or loss.
	ErrGameOver = errors.New("game is over; start a new game")

	// ErrMaxAttemptsReached is a defensive guard: the won/lost transitions
	// should make this unreachable, but a session at five attempts must
	// never accept a sixth guess.
	ErrMaxAttemptsReached = errors.New("maximum attempts reached")

	// ErrNoWordsAvailable means the word table is empty. Operational
	// misconfiguration, actionable by an admin.
	ErrNoWordsAvailable = errors.New("no words available")
)

// DailyLimitError rejects start_new_game once the user has played the daily
// cap of distinct words.
type DailyLimitError struct {
	Played int
	Limit  int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily limit reached: %d of %d words played today", e.Played, e.Limit)
}
