package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/guessword/backend/internal/api/handlers"
	"github.com/guessword/backend/internal/config"
	"github.com/guessword/backend/internal/game"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, machine *game.Machine, sessions *game.SessionStore, cfg *config.Config) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Auth endpoints
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", handlers.Register(db))
			authGroup.POST("/login", handlers.Login(db, cfg))
			authGroup.POST("/logout", handlers.AuthMiddleware(cfg), handlers.Logout(sessions))
		}

		// Authenticated player endpoints
		authed := v1.Group("")
		authed.Use(handlers.AuthMiddleware(cfg))
		{
			authed.GET("/me", handlers.GetMe(db))

			gameGroup := authed.Group("/game")
			{
				gameGroup.GET("/state", handlers.GetGameState(machine))
				gameGroup.POST("/new", handlers.StartNewGame(machine))
				gameGroup.POST("/guess", handlers.SubmitGuess(machine))
			}
		}

		// Admin reporting endpoints
		admin := v1.Group("/admin")
		admin.Use(handlers.AuthMiddleware(cfg), handlers.AdminRequired(db))
		{
			admin.GET("/reports/daily", handlers.DailyReport(db))
			admin.GET("/reports/users", handlers.UserReport(db))
		}
	}
}
