// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"os"
	"testing"

	"github.com/sahilchouksey/dashboard-api/database"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDSNEnv names the variable that enables the Postgres-backed tests
const PostgresDSNEnv = "TEST_POSTGRES_DSN"

// SQLiteDB returns a migrated in-memory database that lives for the test.
// The pool is pinned to one connection so every query sees the same memory
// database.
func SQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// PostgresDB connects to TEST_POSTGRES_DSN and skips the test when it is unset.
// Every table is truncated before the test runs.
func PostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("postgres handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	err = db.Exec(`TRUNCATE users, topics, topic_reviews, user_topics, user_topic_progress,
		homepage, homepage_hero, homepage_about, homepage_contact, homepage_faqs RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("truncate postgres: %v", err)
	}
	return db
}
