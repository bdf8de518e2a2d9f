package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/guessword/backend/internal/auth"
	"github.com/guessword/backend/internal/config"
	"github.com/guessword/backend/internal/game"
	"github.com/guessword/backend/internal/models"
)

// uniqueViolation is the postgres error code for a unique constraint breach
const uniqueViolation = "23505"

// Register creates a new player account
func Register(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}

		username := strings.TrimSpace(req.Username)
		if err := auth.ValidateUsername(username); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := auth.ValidatePassword(req.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Printf("[AUTH] Failed to hash password for %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		user, err := auth.CreateUser(db, username, hash)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
				c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
				return
			}
			log.Printf("[AUTH] Failed to create user %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		log.Printf("[AUTH] Registered user %s (id=%d)", user.Username, user.ID)
		c.JSON(http.StatusCreated, gin.H{
			"user": gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
		})
	}
}

// Login validates credentials and issues a JWT carrying user id and role
func Login(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}

		user, err := auth.ValidateCredentials(db, strings.TrimSpace(req.Username), req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}

		exp := time.Now().Add(time.Duration(cfg.TokenExpiryHrs) * time.Hour)
		claims := jwt.MapClaims{
			"user_id": user.ID,
			"role":    user.Role,
			"exp":     exp.Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("[AUTH] Failed to sign token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": signed,
			"user":  gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
		})
	}
}

// Logout discards the caller's game session. Tokens are stateless; the game
// session in Redis is the only server-side state to clear.
func Logout(sessions *game.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")
		if err := sessions.Clear(context.Background(), userID); err != nil {
			log.Printf("[AUTH] Failed to clear session for user %d: %v", userID, err)
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GetMe returns the authenticated user's profile
func GetMe(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")

		var user models.User
		if err := db.Get(&user, `SELECT id, username, password_hash, role, date_registered FROM users WHERE id=$1`, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":              user.ID,
			"username":        user.Username,
			"role":            user.Role,
			"date_registered": user.DateRegistered.Format(time.RFC3339),
		})
	}
}

// AuthMiddleware validates the bearer JWT and sets user_id and role in context
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userIDf, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", int(userIDf))
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		c.Next()
	}
}

// AdminRequired rejects callers whose account is not an admin. The role is
// re-read from the DB so a revoked admin cannot keep using an old token.
func AdminRequired(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")

		var role string
		if err := db.Get(&role, `SELECT role FROM users WHERE id=$1`, userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
