package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/hexagonal-games/backend/internal/cache"
	"github.com/hexagonal-games/backend/internal/feed"
	"github.com/hexagonal-games/backend/internal/handlers"
	"github.com/hexagonal-games/backend/internal/middleware"
	"github.com/hexagonal-games/backend/internal/repositories"
	"github.com/hexagonal-games/backend/internal/uploads"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, authClient *auth.Client, posts repositories.PostRepository, uploader uploads.Uploader, localCache cache.Store, remoteTimeout time.Duration) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(authClient, remoteTimeout))
	log.Println("Session authentication middleware applied to /api/v1 group.")

	// Feed routes
	aggregator := feed.NewAggregator(posts, localCache)
	feedHandler := handlers.NewFeedHandler(aggregator)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(posts, uploader, localCache)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(posts)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Account routes
	accountHandler := handlers.NewAccountHandler()
	accountHandler.RegisterAccountRoutes(api)
	log.Println("Account routes configured.")
}
