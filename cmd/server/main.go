package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kanaverse/animeplay/backend/internal/router"
	"github.com/kanaverse/animeplay/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the persistence port
	store, err := config.InitStorage()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, store, time.Duration(cfg.AuthDelayMS)*time.Millisecond)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
