package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sahilchouksey/dashboard-api/config"
	"github.com/sahilchouksey/dashboard-api/database"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM(env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Dashboard API - Demo Data Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.NewSeeder(store.GetDB(), time.Now()).SeedAll(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Println(separator)
}
