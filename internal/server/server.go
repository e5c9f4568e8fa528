// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"JobJumper-backend/internal/ai"
	"JobJumper-backend/internal/auth"
	"JobJumper-backend/internal/database"
	"JobJumper-backend/internal/logger"
	"JobJumper-backend/internal/tracker"
)

// MyServer carries the shared dependencies every route handler is built from.
type MyServer struct {
	port int

	DB        *database.DBinstanceStruct
	Tracker   *tracker.Tracker
	AI        *ai.Client
	Blacklist auth.JwtBlacklistStore
	Log       *logger.Logger
}

// NewServer construct new http.Server instance wired with all routes.
func NewServer(
	db *database.DBinstanceStruct,
	tr *tracker.Tracker,
	aiClient *ai.Client,
	blacklist auth.JwtBlacklistStore,
	log *logger.Logger,
) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	myServer := &MyServer{
		port:      port,
		DB:        db,
		Tracker:   tr,
		AI:        aiClient,
		Blacklist: blacklist,
		Log:       log,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      myServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
