package game

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"
)

// GuessResult is the outcome of one accepted guess.
type GuessResult struct {
	Guess    string  `json:"guess"`
	Attempt  int     `json:"attempt"`
	Feedback []Color `json:"feedback"`
	Won      bool    `json:"won"`
	Lost     bool    `json:"lost"`
}

// HistoryEntry is one past guess with its recomputed feedback.
type HistoryEntry struct {
	Guess    string  `json:"guess"`
	Attempt  int     `json:"attempt"`
	Feedback []Color `json:"feedback"`
}

// View is everything the play screen needs to render.
type View struct {
	Active            bool           `json:"active"`
	Attempts          int            `json:"attempts"`
	Won               bool           `json:"won"`
	Lost              bool           `json:"lost"`
	DailyLimitReached bool           `json:"daily_limit_reached"`
	WordsPlayedToday  int            `json:"words_played_today"`
	History           []HistoryEntry `json:"history"`
}

// Machine drives the per-user game session state machine. All mutable state
// lives in the session store and the append-only guess table; the machine
// itself is stateless and safe for concurrent use across users.
type Machine struct {
	store      Store
	sessions   *SessionStore
	dailyLimit int
	now        func() time.Time
	pick       func(n int) int
}

// NewMachine wires the state machine to its collaborators.
func NewMachine(store Store, sessions *SessionStore, dailyLimit int) *Machine {
	return &Machine{
		store:      store,
		sessions:   sessions,
		dailyLimit: dailyLimit,
		now:        time.Now,
		pick:       randomIndex,
	}
}

// MaxAttempts is the fixed cap of guesses per word.
const MaxAttempts = 5

// randomIndex returns a uniform random index in [0, n).
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform entropy source is broken
		log.Printf("[GAME] crypto/rand failed, falling back to time-based pick: %v", err)
		return int(time.Now().UnixNano() % int64(n))
	}
	return int(v.Int64())
}

// StartNewGame picks a uniform random word from the full word set and resets
// the user's session. Selection is unconditioned on past plays: repeats are
// possible, and a repeated word still counts only once toward the daily cap.
// Rejected with DailyLimitError once the user has guessed at the daily cap of
// distinct words today, with ErrNoWordsAvailable if the word table is empty.
func (m *Machine) StartNewGame(ctx context.Context, userID int) (*Session, error) {
	played, err := m.store.WordsPlayedOn(ctx, userID, m.now())
	if err != nil {
		return nil, err
	}
	if played >= m.dailyLimit {
		return nil, &DailyLimitError{Played: played, Limit: m.dailyLimit}
	}

	words, err := m.store.ListWords(ctx)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrNoWordsAvailable
	}

	sess := &Session{WordID: words[m.pick(len(words))].ID}
	if err := m.sessions.Save(ctx, userID, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

// SubmitGuess validates and scores one guess, appends it to the guess log and
// advances the session. Every rejection happens before any write.
func (m *Machine) SubmitGuess(ctx context.Context, userID int, text string) (*GuessResult, error) {
	sess, err := m.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sess.Active() {
		return nil, ErrNoActiveGame
	}
	if sess.Won || sess.Lost {
		return nil, ErrGameOver
	}
	if sess.Attempts >= MaxAttempts {
		return nil, ErrMaxAttemptsReached
	}

	guess, err := NormalizeGuess(text)
	if err != nil {
		return nil, err
	}

	attempt := sess.Attempts + 1
	target, err := m.store.AppendGuess(ctx, userID, sess.WordID, guess, attempt)
	if err != nil {
		return nil, err
	}

	sess.Attempts = attempt
	if guess == target {
		sess.Won = true
	} else if sess.Attempts >= MaxAttempts {
		sess.Lost = true
	}
	if err := m.sessions.Save(ctx, userID, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &GuessResult{
		Guess:    guess,
		Attempt:  attempt,
		Feedback: Score(guess, target),
		Won:      sess.Won,
		Lost:     sess.Lost,
	}, nil
}

// CurrentView reconstructs the ordered guess history for the active word.
// Feedback is recomputed from the stored raw guesses and the target, never
// persisted, so a corrected scoring algorithm applies to old games without a
// data migration.
func (m *Machine) CurrentView(ctx context.Context, userID int) (*View, error) {
	played, err := m.store.WordsPlayedOn(ctx, userID, m.now())
	if err != nil {
		return nil, err
	}

	view := &View{
		WordsPlayedToday:  played,
		DailyLimitReached: played >= m.dailyLimit,
	}

	sess, err := m.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sess.Active() {
		return view, nil
	}

	word, err := m.store.GetWord(ctx, sess.WordID)
	if err != nil {
		return nil, err
	}
	guesses, err := m.store.GuessHistory(ctx, userID, sess.WordID)
	if err != nil {
		return nil, err
	}

	view.Active = true
	view.Attempts = sess.Attempts
	view.Won = sess.Won
	view.Lost = sess.Lost
	for _, g := range guesses {
		view.History = append(view.History, HistoryEntry{
			Guess:    g.Guess,
			Attempt:  g.AttemptNumber,
			Feedback: Score(g.Guess, word.Word),
		})
	}
	return view, nil
}

// NormalizeGuess trims and uppercases the input and enforces the exactly-five-
// letters rule. Returns ErrInvalidGuessFormat otherwise.
func NormalizeGuess(text string) (string, error) {
	guess := strings.ToUpper(strings.TrimSpace(text))
	if len(guess) != WordLength {
		return "", ErrInvalidGuessFormat
	}
	for i := 0; i < len(guess); i++ {
		if guess[i] < 'A' || guess[i] > 'Z' {
			return "", ErrInvalidGuessFormat
		}
	}
	return guess, nil
}
