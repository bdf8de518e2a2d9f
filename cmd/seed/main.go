package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/guessword/backend/internal/auth"
	"github.com/guessword/backend/internal/config"
	"github.com/guessword/backend/internal/database"
	"github.com/guessword/backend/internal/models"
)

// The static five-letter word list the game draws from.
var words = []string{
	"ABOUT", "ABOVE", "ABUSE", "ACTOR", "ACUTE", "ADMIT", "ADOPT", "ADULT", "AFTER", "AGAIN",
	"AGENT", "AGREE", "AHEAD", "ALARM", "ALBUM", "ALERT", "ALIEN", "ALIGN", "ALIKE", "ALIVE",
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Seed word list
	inserted := 0
	for _, w := range words {
		res, err := db.Exec(`INSERT INTO words (word) VALUES ($1) ON CONFLICT (word) DO NOTHING`, w)
		if err != nil {
			log.Fatalf("Failed to insert word %s: %v", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	log.Printf("✓ Word list seeded (%d new, %d total)", inserted, len(words))

	// Seed admin account
	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "AdminUser"
		log.Printf("Using default admin username: %s", adminUsername)
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123$"
		log.Printf("WARNING: Using default admin password. Set ADMIN_PASSWORD env var in production!")
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, password_hash, role, date_registered)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role
	`, adminUsername, hash, models.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("✓ Admin account created/updated successfully")
	log.Printf("  Username: %s", adminUsername)
	log.Println("\nYou can now log in at /api/v1/auth/login")
}
