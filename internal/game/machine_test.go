package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/guessword/backend/internal/models"
)

// memStore is an in-memory Store for exercising the state machine without a
// database.
type memStore struct {
	mu      sync.Mutex
	words   []models.Word
	guesses []models.Guess
	nextID  int
}

func newMemStore(words ...string) *memStore {
	s := &memStore{}
	for i, w := range words {
		s.words = append(s.words, models.Word{ID: i + 1, Word: w})
	}
	return s
}

func (s *memStore) ListWords(ctx context.Context) ([]models.Word, error) {
	return s.words, nil
}

func (s *memStore) GetWord(ctx context.Context, id int) (*models.Word, error) {
	for _, w := range s.words {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, fmt.Errorf("word %d not found", id)
}

func (s *memStore) AppendGuess(ctx context.Context, userID, wordID int, guess string, attempt int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	word, err := s.GetWord(ctx, wordID)
	if err != nil {
		return "", err
	}
	s.nextID++
	s.guesses = append(s.guesses, models.Guess{
		ID:            s.nextID,
		UserID:        userID,
		WordID:        wordID,
		Guess:         guess,
		AttemptNumber: attempt,
		Date:          time.Now(),
	})
	return word.Word, nil
}

func (s *memStore) GuessHistory(ctx context.Context, userID, wordID int) ([]models.Guess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Guess
	for _, g := range s.guesses {
		if g.UserID == userID && g.WordID == wordID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *memStore) WordsPlayedOn(ctx context.Context, userID int, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	distinct := make(map[int]struct{})
	for _, g := range s.guesses {
		if g.UserID == userID && sameDay(g.Date, day) {
			distinct[g.WordID] = struct{}{}
		}
	}
	return len(distinct), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// newTestMachine builds a machine over an in-memory store and a miniredis
// session store. The word picker always selects index 0 so tests know the
// target.
func newTestMachine(t *testing.T, words ...string) (*Machine, *memStore) {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { client.Close() })

	store := newMemStore(words...)
	m := NewMachine(store, NewSessionStore(client, time.Hour), 3)
	m.pick = func(n int) int { return 0 }
	return m, store
}

const testUser = 42

func TestStartNewGameEmptyWordTable(t *testing.T) {
	m, _ := newTestMachine(t)

	if _, err := m.StartNewGame(context.Background(), testUser); !errors.Is(err, ErrNoWordsAvailable) {
		t.Fatalf("expected ErrNoWordsAvailable, got %v", err)
	}
}

func TestSubmitGuessWithoutGame(t *testing.T) {
	m, store := newTestMachine(t, "ALIVE")

	if _, err := m.SubmitGuess(context.Background(), testUser, "ABOUT"); !errors.Is(err, ErrNoActiveGame) {
		t.Fatalf("expected ErrNoActiveGame, got %v", err)
	}
	if len(store.guesses) != 0 {
		t.Errorf("rejected guess must not be recorded, found %d rows", len(store.guesses))
	}
}

func TestInvalidGuessFormatNoMutation(t *testing.T) {
	m, store := newTestMachine(t, "ALIVE")
	ctx := context.Background()

	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}

	for _, bad := range []string{"", "ABCD", "ABCDEF", "AB1DE", "AB DE", "ÅLIVE"} {
		if _, err := m.SubmitGuess(ctx, testUser, bad); !errors.Is(err, ErrInvalidGuessFormat) {
			t.Errorf("SubmitGuess(%q): expected ErrInvalidGuessFormat, got %v", bad, err)
		}
	}

	if len(store.guesses) != 0 {
		t.Errorf("rejected guesses must not be recorded, found %d rows", len(store.guesses))
	}
	sess, err := m.sessions.Get(ctx, testUser)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if sess.Attempts != 0 {
		t.Errorf("rejected guesses must not advance attempts, got %d", sess.Attempts)
	}
}

func TestLowercaseGuessIsNormalized(t *testing.T) {
	m, _ := newTestMachine(t, "ALIVE")
	ctx := context.Background()

	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	result, err := m.SubmitGuess(ctx, testUser, "  alive ")
	if err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if result.Guess != "ALIVE" || !result.Won {
		t.Errorf("expected normalized winning guess, got %+v", result)
	}
}

func TestWinBlocksFurtherGuesses(t *testing.T) {
	m, store := newTestMachine(t, "ALIVE")
	ctx := context.Background()

	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}

	result, err := m.SubmitGuess(ctx, testUser, "ALIVE")
	if err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if !result.Won || result.Lost {
		t.Fatalf("correct guess should win: %+v", result)
	}
	for _, c := range result.Feedback {
		if c != ColorGreen {
			t.Errorf("winning feedback should be all green, got %v", result.Feedback)
		}
	}

	if _, err := m.SubmitGuess(ctx, testUser, "ABOUT"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver after win, got %v", err)
	}
	if len(store.guesses) != 1 {
		t.Errorf("post-win guess must not be recorded, found %d rows", len(store.guesses))
	}
}

func TestLossAfterFiveMisses(t *testing.T) {
	m, store := newTestMachine(t, "ALIVE")
	ctx := context.Background()

	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}

	misses := []string{"ABOUT", "ABOVE", "ABUSE", "ACTOR", "ACUTE"}
	for i, miss := range misses {
		result, err := m.SubmitGuess(ctx, testUser, miss)
		if err != nil {
			t.Fatalf("SubmitGuess %d failed: %v", i+1, err)
		}
		if result.Attempt != i+1 {
			t.Errorf("attempt %d reported as %d", i+1, result.Attempt)
		}
		if result.Won {
			t.Fatalf("miss %q must not win", miss)
		}
		if i < 4 && result.Lost {
			t.Errorf("lost too early on attempt %d", i+1)
		}
		if i == 4 && !result.Lost {
			t.Errorf("fifth miss must lose the game")
		}
	}

	// A sixth guess is never accepted.
	if _, err := m.SubmitGuess(ctx, testUser, "ADMIT"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver after loss, got %v", err)
	}

	// Persisted attempt numbers are contiguous from 1 with no gaps.
	history, _ := store.GuessHistory(ctx, testUser, 1)
	if len(history) != 5 {
		t.Fatalf("expected 5 recorded guesses, got %d", len(history))
	}
	for i, g := range history {
		if g.AttemptNumber != i+1 {
			t.Errorf("attempt sequence broken at index %d: got %d", i, g.AttemptNumber)
		}
	}
}

func TestMaxAttemptsDefensiveGuard(t *testing.T) {
	m, _ := newTestMachine(t, "ALIVE")
	ctx := context.Background()

	// A session at five attempts without a terminal flag should be
	// unreachable, but must still be rejected.
	if err := m.sessions.Save(ctx, testUser, &Session{WordID: 1, Attempts: 5}); err != nil {
		t.Fatalf("session save failed: %v", err)
	}
	if _, err := m.SubmitGuess(ctx, testUser, "ABOUT"); !errors.Is(err, ErrMaxAttemptsReached) {
		t.Fatalf("expected ErrMaxAttemptsReached, got %v", err)
	}
}

func TestDailyLimit(t *testing.T) {
	m, store := newTestMachine(t, "ABOUT", "ABOVE", "ABUSE", "ACTOR")
	ctx := context.Background()

	// Play a guess against two distinct words today.
	for wordID := 1; wordID <= 2; wordID++ {
		if _, err := store.AppendGuess(ctx, testUser, wordID, "XXXXX", 1); err != nil {
			t.Fatalf("seed guess failed: %v", err)
		}
	}

	// Third distinct word is allowed.
	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("third word should be allowed, got %v", err)
	}
	if _, err := store.AppendGuess(ctx, testUser, 3, "XXXXX", 1); err != nil {
		t.Fatalf("seed guess failed: %v", err)
	}

	// Fourth distinct word is rejected with the count and limit.
	_, err := m.StartNewGame(ctx, testUser)
	var limitErr *DailyLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected DailyLimitError, got %v", err)
	}
	if limitErr.Played != 3 || limitErr.Limit != 3 {
		t.Errorf("DailyLimitError = %+v, want played=3 limit=3", limitErr)
	}
}

func TestRepeatedWordCountsOnceTowardLimit(t *testing.T) {
	m, store := newTestMachine(t, "ABOUT")
	ctx := context.Background()

	// Three games against the same word id leave the distinct count at one,
	// so a new start is still allowed.
	for attempt := 1; attempt <= 3; attempt++ {
		if _, err := store.AppendGuess(ctx, testUser, 1, "XXXXX", attempt); err != nil {
			t.Fatalf("seed guess failed: %v", err)
		}
	}
	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("repeat word should count once toward the cap, got %v", err)
	}
}

func TestCurrentViewRecomputesFeedback(t *testing.T) {
	m, _ := newTestMachine(t, "ALIGN")
	ctx := context.Background()

	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	if _, err := m.SubmitGuess(ctx, testUser, "ALIVE"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}
	if _, err := m.SubmitGuess(ctx, testUser, "ALIGN"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}

	view, err := m.CurrentView(ctx, testUser)
	if err != nil {
		t.Fatalf("CurrentView failed: %v", err)
	}
	if !view.Active || !view.Won || view.Lost {
		t.Errorf("view state wrong: %+v", view)
	}
	if view.Attempts != 2 || len(view.History) != 2 {
		t.Fatalf("expected 2 attempts in history, got attempts=%d len=%d", view.Attempts, len(view.History))
	}

	// History is ordered by attempt and feedback is derived from the raw
	// guesses, never stored.
	first := view.History[0]
	if first.Attempt != 1 || first.Guess != "ALIVE" {
		t.Errorf("history out of order: %+v", first)
	}
	want := []Color{ColorGreen, ColorGreen, ColorGreen, ColorGrey, ColorGrey}
	for i, c := range want {
		if first.Feedback[i] != c {
			t.Errorf("recomputed feedback[%d] = %s, want %s", i, first.Feedback[i], c)
		}
	}
}

func TestCurrentViewNoActiveGame(t *testing.T) {
	m, _ := newTestMachine(t, "ALIVE")

	view, err := m.CurrentView(context.Background(), testUser)
	if err != nil {
		t.Fatalf("CurrentView failed: %v", err)
	}
	if view.Active || view.Won || view.Lost || len(view.History) != 0 {
		t.Errorf("expected empty view, got %+v", view)
	}
}

func TestStartNewGameResetsSession(t *testing.T) {
	m, _ := newTestMachine(t, "ALIVE", "ABOUT")
	ctx := context.Background()

	if _, err := m.StartNewGame(ctx, testUser); err != nil {
		t.Fatalf("StartNewGame failed: %v", err)
	}
	if _, err := m.SubmitGuess(ctx, testUser, "ALIVE"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}

	// Starting again picks a word and clears counters and flags.
	m.pick = func(n int) int { return 1 }
	sess, err := m.StartNewGame(ctx, testUser)
	if err != nil {
		t.Fatalf("second StartNewGame failed: %v", err)
	}
	if sess.WordID != 2 || sess.Attempts != 0 || sess.Won || sess.Lost {
		t.Errorf("session not reset: %+v", sess)
	}
}
