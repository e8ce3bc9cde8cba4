package router

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/enzogallo/discover-backend/internal/catalog"
	"github.com/enzogallo/discover-backend/internal/clock"
	"github.com/enzogallo/discover-backend/internal/handlers"
	"github.com/enzogallo/discover-backend/internal/middleware"
	"github.com/enzogallo/discover-backend/internal/repositories"
	"github.com/enzogallo/discover-backend/internal/services"
	"github.com/enzogallo/discover-backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), int(cfg.RateLimitRPS)*2))
	e.Use(middleware.Monitor())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, firebaseAuthClient *auth.Client) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %s: %v", cfg.Timezone, err)
	}
	clk := clock.New(location)

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize repositories ---
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	likeRepo := repositories.NewMongoLikeRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	followRepo := repositories.NewMongoFollowRepository(mongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create post indexes: %v", err)
	}
	log.Println("MongoDB indexes ensured.")

	// --- Initialize catalog search with its PostgreSQL cache ---
	searchCache, err := catalog.NewCache(db.Postgres, cfg.CatalogCacheTTL)
	if err != nil {
		log.Fatalf("Failed to initialize catalog cache: %v", err)
	}
	catalogClient := catalog.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	catalogService := catalog.NewService(catalogClient, searchCache)

	// --- Initialize services ---
	userService := services.NewUserService(userRepo, postRepo, likeRepo, commentRepo, followRepo, clk)
	postService := services.NewPostService(postRepo, userRepo, likeRepo, commentRepo, clk)
	engagementService := services.NewEngagementService(likeRepo, commentRepo, followRepo, postRepo, userRepo, clk)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userService)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require Firebase authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postService, userService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(engagementService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(engagementService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(engagementService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Catalog routes
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	catalogHandler.RegisterCatalogRoutes(api)
	log.Println("Catalog routes configured.")

	log.Println("All routes configured.")
}
