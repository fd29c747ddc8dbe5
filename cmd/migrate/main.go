// Command migrate creates or updates the tables and checks the connection.
// Usage: go run ./cmd/migrate
package main

import (
	"log"

	"github.com/sahilchouksey/dashboard-api/config"
	"github.com/sahilchouksey/dashboard-api/database"
)

func main() {
	log.Println("=== GORM Migration ===")

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatal("Failed to load environment variables:", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read environment variables:", err)
	}

	// Initialize GORM connection
	store, err := database.StartGORM(env)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	// Run migrations
	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Health check
	if err := store.HealthCheck(); err != nil {
		log.Fatal("Database health check failed:", err)
	}

	log.Println("✅ All migrations completed successfully!")
	log.Println("✅ Database connection healthy!")
	log.Println("\nTables:")
	for _, table := range []string{
		"users", "topics", "topic_reviews", "user_topics", "user_topic_progress",
		"homepage", "homepage_hero", "homepage_about", "homepage_contact", "homepage_faqs",
	} {
		log.Println("  - " + table)
	}
}
