package auth

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/guessword/backend/internal/models"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// GetUserByUsername retrieves a user account by exact (case-sensitive) username.
func GetUserByUsername(db *sqlx.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Get(&user, `SELECT id, username, password_hash, role, date_registered FROM users WHERE username=$1`, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new player account and returns it.
func CreateUser(db *sqlx.DB, username, passwordHash string) (*models.User, error) {
	var user models.User
	err := db.Get(&user, `
		INSERT INTO users (username, password_hash, role, date_registered)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, username, password_hash, role, date_registered
	`, username, passwordHash, models.RolePlayer)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateCredentials looks up the user and checks the password.
func ValidateCredentials(db *sqlx.DB, username, password string) (*models.User, error) {
	user, err := GetUserByUsername(db, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("invalid password")
	}
	return user, nil
}

// ValidateUsername enforces the registration rules: at least five characters
// containing both uppercase and lowercase letters.
func ValidateUsername(username string) error {
	if len(username) < 5 {
		return fmt.Errorf("username must be at least 5 characters long")
	}
	var hasUpper, hasLower bool
	for _, r := range username {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if !hasUpper || !hasLower {
		return fmt.Errorf("username must contain both uppercase and lowercase letters")
	}
	return nil
}

// ValidatePassword enforces the registration rules: at least five characters
// with a letter, a digit, and one of $ % * @.
func ValidatePassword(password string) error {
	if len(password) < 5 {
		return fmt.Errorf("password must be at least 5 characters long")
	}
	var hasAlpha, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasAlpha = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune("$%*@", r):
			hasSpecial = true
		}
	}
	if !hasAlpha || !hasDigit || !hasSpecial {
		return fmt.Errorf("password must contain letters, numbers, and one of: $, %%, *, @")
	}
	return nil
}
