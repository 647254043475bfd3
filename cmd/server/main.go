package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hexagonal-games/backend/internal/cache"
	"github.com/hexagonal-games/backend/internal/repositories"
	"github.com/hexagonal-games/backend/internal/router"
	"github.com/hexagonal-games/backend/internal/uploads"
	"github.com/hexagonal-games/backend/pkg/config"
	"github.com/hexagonal-games/backend/pkg/firebase"
	"github.com/hexagonal-games/backend/validators"
)

func main() {
	// Load configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer firebaseApp.Close()

	// Post store backend
	var posts repositories.PostRepository
	switch cfg.PostsBackend {
	case "mongo":
		posts = repositories.NewMongoPostRepository(db.Mongo.Database("hexagonalgames"), cfg.RemoteTimeout)
		log.Println("Post repository backed by MongoDB.")
	default:
		posts = repositories.NewFirestorePostRepository(firebaseApp.Firestore, cfg.RemoteTimeout)
		log.Println("Post repository backed by Firestore.")
	}

	// Local pending-post cache: durable when Postgres is configured,
	// in-memory otherwise.
	var localCache cache.Store
	if db.Postgres != nil {
		localCache, err = cache.NewGormStore(db.Postgres)
		if err != nil {
			log.Fatalf("Failed to initialize pending-post cache: %v", err)
		}
		log.Println("Pending-post cache backed by PostgreSQL.")
	} else {
		localCache = cache.NewMemoryStore()
		log.Println("Pending-post cache held in memory.")
	}

	uploader := uploads.NewGCSUploader(firebaseApp.Bucket, cfg.RemoteTimeout)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, firebaseApp.AuthClient, posts, uploader, localCache, cfg.RemoteTimeout)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
