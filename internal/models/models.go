package models

import (
	"time"
)

// Roles assignable to a user account.
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// User represents a registered account
type User struct {
	ID             int       `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Role           string    `db:"role" json:"role"`
	DateRegistered time.Time `db:"date_registered" json:"date_registered"`
}

// Word is one entry of the static five-letter word list
type Word struct {
	ID   int    `db:"id" json:"id"`
	Word string `db:"word" json:"word"`
}

// Guess is one submitted guess for a (user, word) game.
// Rows are append-only: attempt numbers for a given user and word form a
// contiguous 1-based sequence of length at most five.
type Guess struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	WordID        int       `db:"word_id" json:"word_id"`
	Guess         string    `db:"guess" json:"guess"`
	AttemptNumber int       `db:"attempt_number" json:"attempt_number"`
	Date          time.Time `db:"date" json:"date"`
}
