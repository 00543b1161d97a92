// Package router sets up HTTP routes for the API.
package router

import (
	"net/http"

	_ "recipehub/swagger" // Import generated swagger docs

	"recipehub/internal/handler"
	"recipehub/internal/middleware"
	"recipehub/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds all dependencies needed to set up routes.
type Config struct {
	AuthHandler   *handler.AuthHandler
	RecipeHandler *handler.RecipeHandler
	UserHandler   *handler.UserHandler
	TokenManager  auth.TokenManager
	UserSource    middleware.UserSource
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	r := gin.Default()

	// Global middleware
	r.Use(middleware.CORS())

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authn := middleware.Auth(cfg.TokenManager, cfg.UserSource)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", cfg.AuthHandler.Register)
			authRoutes.POST("/login", cfg.AuthHandler.Login)
		}

		// Auth routes (protected)
		authProtected := v1.Group("/auth")
		authProtected.Use(authn)
		{
			authProtected.GET("/me", cfg.AuthHandler.Me)
			authProtected.POST("/change-password", cfg.AuthHandler.ChangePassword)
		}

		// Recipe routes (protected)
		recipes := v1.Group("/recipes")
		recipes.Use(authn)
		{
			recipes.GET("", cfg.RecipeHandler.ListRecipes)
			recipes.POST("", cfg.RecipeHandler.CreateRecipe)
			// Static segments go before /:id so gin does not treat
			// "generate" as a recipe ID.
			recipes.POST("/generate", cfg.RecipeHandler.GenerateRecipe)
			recipes.POST("/save-generated", cfg.RecipeHandler.SaveGeneratedRecipe)
			recipes.GET("/:id", cfg.RecipeHandler.GetRecipe)
			recipes.PUT("/:id", cfg.RecipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", cfg.RecipeHandler.DeleteRecipe)
			recipes.POST("/:id/image", cfg.RecipeHandler.RequestImageUpload)
		}

		// User routes (protected)
		users := v1.Group("/users")
		users.Use(authn)
		{
			users.GET("", middleware.RequireAdmin(), cfg.UserHandler.GetAllUsers)
			users.GET("/profile", cfg.UserHandler.GetProfile)
			users.PUT("/profile", cfg.UserHandler.UpdateProfile)
			users.GET("/saved-recipes", cfg.UserHandler.ListSavedRecipes)
			users.POST("/saved-recipes/:recipeId", cfg.UserHandler.SaveRecipe)
			users.DELETE("/saved-recipes/:recipeId", cfg.UserHandler.UnsaveRecipe)
			users.GET("/calorie-log", cfg.UserHandler.GetCalorieLog)
			users.POST("/calorie-log", cfg.UserHandler.AddCalorieLogEntry)
		}
	}

	return r
}
