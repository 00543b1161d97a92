//go:build api

// Package testserver provides a fully wired test server for API integration tests.
package testserver

import (
	"context"
	"time"

	"recipehub/internal/authz"
	"recipehub/internal/cache"
	"recipehub/internal/generator"
	"recipehub/internal/handler"
	"recipehub/internal/nutrition"
	"recipehub/internal/queue"
	"recipehub/internal/repository"
	"recipehub/internal/router"
	"recipehub/internal/service"
	"recipehub/internal/storage"
	"recipehub/pkg/auth"
	"recipehub/test/api/testdb"

	"github.com/gin-gonic/gin"
)

const (
	// TestJWTSecret is the JWT secret used in tests.
	TestJWTSecret = "test-secret-key-for-api-tests"
	// TestJWTExpiry is the token expiry time used in tests.
	TestJWTExpiry = 15 * time.Minute
	// TestDBName is the database name used in tests.
	TestDBName = "test_api"
)

// TestServer holds all dependencies for API integration tests.
type TestServer struct {
	// Router is the Gin engine for making HTTP requests.
	Router *gin.Engine

	// Containers
	MongoDB *testdb.MongoContainer
	Redis   *testdb.RedisContainer
	MinIO   *testdb.MinIOContainer

	// Repositories (for direct database access in tests)
	UserRepo   repository.UserRepository
	RecipeRepo repository.RecipeRepository

	// Services (for direct service access in tests)
	AuthService   service.AuthServicer
	RecipeService service.RecipeServicer
	UserService   service.UserServicer

	// Auth
	JWTManager *auth.JWTManager

	// Queue
	EstimationQueue     *queue.MemoryQueue
	EstimationProcessor *queue.Processor
	estimator           nutrition.Estimator
}

// New creates a new test server with all dependencies wired up.
// The wiring mirrors production: the authorizer reads recipes through the
// cache, generation runs on the fallback catalog, and estimation uses the
// deterministic mock.
func New(ctx context.Context) (*TestServer, error) {
	gin.SetMode(gin.TestMode)

	// Start containers
	mongoDB, err := testdb.SetupMongoDB(ctx, TestDBName)
	if err != nil {
		return nil, err
	}

	redisContainer, err := testdb.SetupRedis(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		return nil, err
	}

	minioContainer, err := testdb.SetupMinIO(ctx)
	if err != nil {
		_ = mongoDB.Cleanup(ctx)
		_ = redisContainer.Cleanup(ctx)
		return nil, err
	}

	// Cache (uses real Redis)
	redisCache := cache.NewRedis(redisContainer.URI)

	// Storage (uses real MinIO)
	s3Client := storage.NewS3Client(
		minioContainer.Endpoint,
		minioContainer.AccessKey,
		minioContainer.SecretKey,
		minioContainer.Bucket,
		false, // useSSL
	)

	// JWT Manager
	jwtManager := auth.NewJWTManager(TestJWTSecret, TestJWTExpiry)

	// Repository layer
	userRepo := repository.NewUserRepository(mongoDB.Database)
	recipeRepo := repository.NewRecipeRepository(mongoDB.Database)

	// Authorization. Admin bypass stays off so tests exercise the
	// default policy; bypass behavior is covered by unit tests.
	recipeFinder := service.NewCachedRecipeFinder(recipeRepo, redisCache)
	authorizer := authz.NewPolicyAuthorizer(recipeFinder, false)

	// Generation and estimation without external APIs
	recipeGenerator := generator.NewService(nil, false)
	estimator := nutrition.NewMockEstimator()

	// Estimation queue and processor
	estimationQueue := queue.NewMemoryQueue(100)
	estimationProcessor := queue.NewProcessor(estimationQueue, estimator, recipeRepo, 2)

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

	return &TestServer{
		Router:              r,
		MongoDB:             mongoDB,
		Redis:               redisContainer,
		MinIO:               minioContainer,
		UserRepo:            userRepo,
		RecipeRepo:          recipeRepo,
		AuthService:         authService,
		RecipeService:       recipeService,
		UserService:         userService,
		JWTManager:          jwtManager,
		EstimationQueue:     estimationQueue,
		EstimationProcessor: estimationProcessor,
		estimator:           estimator,
	}, nil
}

// Cleanup terminates all containers.
func (ts *TestServer) Cleanup(ctx context.Context) {
	if ts.MinIO != nil {
		_ = ts.MinIO.Cleanup(ctx)
	}
	if ts.Redis != nil {
		_ = ts.Redis.Cleanup(ctx)
	}
	if ts.MongoDB != nil {
		_ = ts.MongoDB.Cleanup(ctx)
	}
}

// StartEstimationProcessor starts the estimation processor.
func (ts *TestServer) StartEstimationProcessor(ctx context.Context) {
	ts.EstimationProcessor.Start(ctx)
}

// StopEstimationProcessor stops the estimation processor and resets the queue
// so subsequent tests can enqueue again.
func (ts *TestServer) StopEstimationProcessor() {
	ts.EstimationProcessor.Stop()
	ts.EstimationQueue.Reset()
	// Create a new processor since the old one has shutdown state
	ts.EstimationProcessor = queue.NewProcessor(ts.EstimationQueue, ts.estimator, ts.RecipeRepo, 2)
}
