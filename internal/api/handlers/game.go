package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guessword/backend/internal/game"
)

// GetGameState returns the current view: ordered guess history with freshly
// computed feedback, state flags, and the daily-limit flag.
func GetGameState(machine *game.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")

		view, err := machine.CurrentView(c.Request.Context(), userID)
		if err != nil {
			log.Printf("[GAME] Failed to build view for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// StartNewGame resets the caller's session around a freshly picked word
func StartNewGame(machine *game.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")

		sess, err := machine.StartNewGame(c.Request.Context(), userID)
		if err != nil {
			var limitErr *game.DailyLimitError
			switch {
			case errors.As(err, &limitErr):
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":  limitErr.Error(),
					"code":   "daily_limit_reached",
					"played": limitErr.Played,
					"limit":  limitErr.Limit,
				})
			case errors.Is(err, game.ErrNoWordsAvailable):
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no words available, contact admin", "code": "no_words_available"})
			default:
				log.Printf("[GAME] Failed to start game for user %d: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"active": true, "attempts": sess.Attempts})
	}
}

// SubmitGuess scores one guess and advances the session state
func SubmitGuess(machine *game.Machine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt("user_id")

		var req struct {
			Guess string `json:"guess" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guess required"})
			return
		}

		result, err := machine.SubmitGuess(c.Request.Context(), userID, req.Guess)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrInvalidGuessFormat):
				c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a valid 5-letter word", "code": "invalid_guess_format"})
			case errors.Is(err, game.ErrNoActiveGame):
				c.JSON(http.StatusConflict, gin.H{"error": "please start a new game first", "code": "no_active_game"})
			case errors.Is(err, game.ErrGameOver):
				c.JSON(http.StatusConflict, gin.H{"error": "game is over, start a new game", "code": "game_over"})
			case errors.Is(err, game.ErrMaxAttemptsReached):
				c.JSON(http.StatusConflict, gin.H{"error": "maximum attempts reached", "code": "max_attempts_reached"})
			default:
				log.Printf("[GAME] Failed to submit guess for user %d: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
