package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipehub/internal/authz"
	"recipehub/internal/cache"
	"recipehub/internal/config"
	"recipehub/internal/database"
	"recipehub/internal/generator"
	"recipehub/internal/handler"
	"recipehub/internal/nutrition"
	"recipehub/internal/queue"
	"recipehub/internal/repository"
	"recipehub/internal/router"
	"recipehub/internal/service"
	"recipehub/internal/storage"
	"recipehub/internal/validator"
	"recipehub/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title           RecipeHub API
// @version         1.0
// @description     A REST API for recipe management with per-user visibility, AI recipe generation, and calorie tracking.

// @contact.name    API Support
// @contact.email   support@example.com

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded")

	// Register custom validators
	validator.RegisterCustomValidators()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Database
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	// Redis Cache
	redisCache := cache.NewRedis(cfg.RedisURI)
	defer redisCache.Close()

	// S3 Storage
	s3Client := storage.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)

	// JWT Manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	recipeRepo := repository.NewRecipeRepository(mongoDB.Database)

	// Authorization: policy decisions read recipes through the cache
	recipeFinder := service.NewCachedRecipeFinder(recipeRepo, redisCache)
	authorizer := authz.NewPolicyAuthorizer(recipeFinder, cfg.AdminBypassEnabled)
	if cfg.AdminBypassEnabled {
		log.Println("Admin read bypass is ENABLED: admins can read private recipes")
	}

	// Recipe generation and calorie estimation. Without an API key the
	// generator serves the static fallback set and estimation uses the
	// deterministic mock.
	var recipeGenerator generator.RecipeGenerator
	var estimator nutrition.Estimator
	if cfg.OpenAIAPIKey != "" {
		chatClient := generator.NewChatClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		recipeGenerator = generator.NewService(chatClient, true)
		estimator = nutrition.NewAIEstimator(chatClient)
		log.Println("Recipe generation backed by chat completion API")
	} else {
		recipeGenerator = generator.NewService(nil, false)
		estimator = nutrition.NewMockEstimator()
		log.Println("No API key configured, using fallback recipe generation and mock estimation")
	}

	// Estimation queue and processor
	estimationQueue := queue.NewMemoryQueue(cfg.EstimationQueueSize)
	estimationProcessor := queue.NewProcessor(estimationQueue, estimator, recipeRepo, cfg.EstimationWorkers)

	// Service layer
	authService := service.NewAuthService(userRepo, redisCache, jwtManager)
	recipeService := service.NewRecipeService(service.RecipeServiceConfig{
		Repo:       recipeRepo,
		Authorizer: authorizer,
		Cache:      redisCache,
		Storage:    s3Client,
		Queue:      estimationQueue,
		Generator:  recipeGenerator,
	})
	userService := service.NewUserService(userRepo, recipeRepo, authorizer, redisCache)

	// Handler layer
	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	userHandler := handler.NewUserHandler(userService)

	// Router
	r := router.Setup(&router.Config{
		AuthHandler:   authHandler,
		RecipeHandler: recipeHandler,
		UserHandler:   userHandler,
		TokenManager:  jwtManager,
		UserSource:    userRepo,
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start estimation processor
	estimationProcessor.Start(ctx)

	// Create HTTP server for graceful shutdown support
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first (drain connections)
	log.Println("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Cancel context to signal processor shutdown
	cancel()

	// Stop estimation processor (waits for workers)
	log.Println("Stopping estimation processor...")
	estimationProcessor.Stop()

	log.Println("Server shutdown complete")
}
