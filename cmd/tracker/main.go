package main

import (
	"log"

	"github.com/Trend4Media/AffenMitWaffen/db"
	"github.com/Trend4Media/AffenMitWaffen/internal/auth"
	"github.com/Trend4Media/AffenMitWaffen/internal/config"
	"github.com/Trend4Media/AffenMitWaffen/internal/router"
	"github.com/Trend4Media/AffenMitWaffen/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	users := store.NewUserStore(conn)
	tracker := store.NewTrackerStore(conn)
	tokens := auth.NewTokenService(cfg.JWTSecret)

	// The service must never start without an administrator, but a
	// bootstrap failure is logged rather than fatal.
	if err := users.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Printf("Admin bootstrap failed: %v", err)
	}

	r := router.New(users, tracker, tokens, cfg.ClientURL)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
