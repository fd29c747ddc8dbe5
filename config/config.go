package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil {
			// A missing .env is fine, the process environment is used instead
			if !os.IsNotExist(err) {
				return err
			}
			log.Println("No .env file found, using process environment")
		}
	}

	return nil
}

type EnviornmentVariable struct {
	GO_ENV string
	PORT   int

	// Database
	DB_DRIVER       string
	DB_USER_NAME    string
	DB_PASSWORD     string
	DB_NAME         string
	DB_HOST         string
	DB_PORT         string
	DB_SSL_MODE     string
	DB_AUTO_MIGRATE bool

	// Redis (optional, backs the rate limiter)
	REDIS_URL string

	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   time.Duration
}

// IsProduction reports whether the service runs with GO_ENV=production
func (e *EnviornmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func Get() (*EnviornmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	envVariables := &EnviornmentVariable{
		GO_ENV: getEnv("GO_ENV", "development"),
		PORT:   port,
		// Database
		DB_DRIVER:       getEnv("DB_DRIVER", "pgx"),
		DB_USER_NAME:    os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:     os.Getenv("DB_PASSWORD"),
		DB_NAME:         os.Getenv("DB_NAME"),
		DB_HOST:         getEnv("DB_HOST", "localhost"),
		DB_PORT:         getEnv("DB_PORT", "5432"),
		DB_SSL_MODE:     getEnv("DB_SSL_MODE", "disable"),
		DB_AUTO_MIGRATE: getEnvBool("DB_AUTO_MIGRATE", true),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// HTTP
		ALLOWED_ORIGINS:     getEnv("ALLOWED_ORIGINS", "*"),
		RATE_LIMIT_REQUESTS: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RATE_LIMIT_WINDOW:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}

	return envVariables, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %v, using %d", key, err, defaultValue)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean for %s: %v, using %t", key, err, defaultValue)
		return defaultValue
	}
	return boolValue
}
