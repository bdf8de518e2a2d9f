package reports

import (
	"time"
)

// GuessEvent is one guess row joined with its target word, the unit both
// reports aggregate over.
type GuessEvent struct {
	UserID int       `db:"user_id"`
	WordID int       `db:"word_id"`
	Guess  string    `db:"guess"`
	Target string    `db:"target"`
	Date   time.Time `db:"date"`
}

// DailySummary is the admin daily report payload.
type DailySummary struct {
	Date           string `json:"date"`
	UsersPlayed    int    `json:"users_played"`
	WordsTried     int    `json:"words_tried"`
	CorrectGuesses int    `json:"correct_guesses"`
}

// UserSummary is one row of the admin per-user report.
type UserSummary struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	DateRegistered time.Time `json:"date_registered"`
	WordsTried     int       `json:"words_tried"`
	CorrectGuesses int       `json:"correct_guesses"`
}

// PlayerRecord is the subset of a user row the per-user report needs.
type PlayerRecord struct {
	ID             int       `db:"id"`
	Username       string    `db:"username"`
	DateRegistered time.Time `db:"date_registered"`
}

// SummarizeDay reduces one day's guess events to the daily report counts.
// CorrectGuesses counts guess events matching the target, not distinct wins:
// a word solved by three users contributes three.
func SummarizeDay(day time.Time, events []GuessEvent) DailySummary {
	users := make(map[int]struct{})
	words := make(map[int]struct{})
	correct := 0

	for _, e := range events {
		users[e.UserID] = struct{}{}
		words[e.WordID] = struct{}{}
		if e.Guess == e.Target {
			correct++
		}
	}

	return DailySummary{
		Date:           day.Format("2006-01-02"),
		UsersPlayed:    len(users),
		WordsTried:     len(words),
		CorrectGuesses: correct,
	}
}

// SummarizeUsers builds the all-time per-player report: distinct words tried
// and total matching-guess count for each player, preserving the input player
// order. Players with no guesses report zeros.
func SummarizeUsers(players []PlayerRecord, events []GuessEvent) []UserSummary {
	wordsTried := make(map[int]map[int]struct{})
	correct := make(map[int]int)

	for _, e := range events {
		if wordsTried[e.UserID] == nil {
			wordsTried[e.UserID] = make(map[int]struct{})
		}
		wordsTried[e.UserID][e.WordID] = struct{}{}
		if e.Guess == e.Target {
			correct[e.UserID]++
		}
	}

	summaries := make([]UserSummary, 0, len(players))
	for _, p := range players {
		summaries = append(summaries, UserSummary{
			ID:             p.ID,
			Username:       p.Username,
			DateRegistered: p.DateRegistered,
			WordsTried:     len(wordsTried[p.ID]),
			CorrectGuesses: correct[p.ID],
		})
	}
	return summaries
}
