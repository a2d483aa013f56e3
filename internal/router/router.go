package router

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/kanaverse/animeplay/backend/internal/handlers"
	"github.com/kanaverse/animeplay/backend/internal/storage"
	"github.com/kanaverse/animeplay/backend/internal/stores"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes builds the state stores on top of the storage port and wires
// them to their routes
func SetupRoutes(e *echo.Echo, store storage.Store, authDelay time.Duration) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize stores ---
	accountStore := stores.NewAccountStore(store, authDelay)
	commentStore := stores.NewCommentStore(store)
	notificationStore := stores.NewNotificationStore(store)

	api := e.Group("/api/v1")

	// Account and session routes
	authHandler := handlers.NewAuthHandler(accountStore)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	log.Println("Auth routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentStore, accountStore)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationStore)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
