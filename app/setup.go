package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/api"
	"github.com/sahilchouksey/dashboard-api/config"
	"github.com/sahilchouksey/dashboard-api/database"
	"github.com/sahilchouksey/dashboard-api/router"
	"github.com/sahilchouksey/dashboard-api/utils"
	"github.com/sahilchouksey/dashboard-api/utils/cache"
	"github.com/sahilchouksey/dashboard-api/utils/middleware"
)

const limiterKeyPrefix = "dashboard-api:limiter:"

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	log, err := utils.NewLogger(getEnv.GO_ENV)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv)
	if err != nil {
		log.Error("Check whether the Postgres is running or not",
			"host", getEnv.DB_HOST,
			"port", getEnv.DB_PORT,
			"error", err,
		)
		return err
	}
	defer store.Close()

	if getEnv.DB_AUTO_MIGRATE {
		if err := store.Init(); err != nil {
			log.Error("Failed to initialize database tables", "error", err)
			return err
		}
	}

	// Rate limiter counters are shared through redis when it is configured
	var limiterStorage fiber.Storage
	if getEnv.REDIS_URL != "" {
		redisStorage, err := cache.NewRedisStorage(getEnv.REDIS_URL, limiterKeyPrefix)
		if err != nil {
			log.Warn("Failed to connect to Redis, rate limiting per instance", "error", err)
		} else {
			defer redisStorage.Close()
			limiterStorage = redisStorage
		}
	}

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), log)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store, log, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   getEnv.RATE_LIMIT_WINDOW,
		LimiterStorage:    limiterStorage,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down API Server")
		if err := server.Shutdown(); err != nil {
			log.Error("Failed to shut down cleanly", "error", err)
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}
