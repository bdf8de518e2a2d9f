package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/guessword/backend/internal/reports"
)

// DailyReport returns the daily summary for ?date=YYYY-MM-DD (default today)
func DailyReport(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		day := time.Now()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			day = parsed
		}

		summary, err := reports.Daily(c.Request.Context(), db, day)
		if err != nil {
			log.Printf("[ADMIN] Failed to build daily report: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// UserReport returns the all-time per-player summary
func UserReport(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := reports.Users(c.Request.Context(), db)
		if err != nil {
			log.Printf("[ADMIN] Failed to build user report: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": summaries})
	}
}
