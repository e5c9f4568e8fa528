// Command api runs the JobJumper backend server.
package main

import (
	"log"
	"os"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"JobJumper-backend/internal/ai"
	"JobJumper-backend/internal/auth"
	"JobJumper-backend/internal/database"
	"JobJumper-backend/internal/fallback"
	"JobJumper-backend/internal/logger"
	"JobJumper-backend/internal/server"
	"JobJumper-backend/internal/store"
	"JobJumper-backend/internal/tracker"
)

// @title JobJumper API
// @version 1.0
// @description Backend for the JobJumper AI job application tracker.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	appLog, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		log.Fatalf("Logger failed to initialize: %s", err)
	}
	defer appLog.Sync()

	db, err := database.GetMainDB()
	if err != nil {
		appLog.Fatal("Database failed to initialize", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLog.Error("Failed to close database", "error", err)
		}
	}()

	// The fallback cache prefers Redis when configured and degrades to the
	// in-process map otherwise.
	var cache fallback.Cache
	if os.Getenv("REDIS_ADDR") != "" {
		redisCache, err := fallback.NewRedisCache()
		if err != nil {
			appLog.Fatal("Redis failed to initialize", "error", err)
		}
		cache = redisCache
	} else {
		appLog.Warn("REDIS_ADDR not set, falling back to in-memory cache")
		cache = fallback.NewInMemoryCache()
	}

	aiClient, err := ai.NewFromEnv(appLog)
	if err != nil {
		appLog.Fatal("AI client failed to initialize", "error", err)
	}

	tr := tracker.New(store.NewGormStore(db), cache, appLog)
	blacklist := auth.NewInMemoryBlacklistStore()

	srv := server.NewServer(db, tr, aiClient, blacklist, appLog)
	appLog.Info("server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		appLog.Fatal("Cannot start server", "error", err)
	}
}
