// Package service contains business logic for the application.
package service

import (
	"context"

	"recipehub/internal/authz"
	"recipehub/internal/models"
)

// AuthServicer defines the interface for authentication operations.
type AuthServicer interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, principal authz.Principal) (*models.User, error)
	ChangePassword(ctx context.Context, principal authz.Principal, req *models.ChangePasswordRequest) error
}

// RecipeServicer defines the interface for recipe operations.
type RecipeServicer interface {
	List(ctx context.Context, principal authz.Principal) ([]models.Recipe, error)
	Get(ctx context.Context, principal authz.Principal, id string) (*models.Recipe, error)
	Create(ctx context.Context, principal authz.Principal, req *models.CreateRecipeRequest) (*models.Recipe, error)
	Update(ctx context.Context, principal authz.Principal, id string, req *models.UpdateRecipeRequest) (*models.Recipe, error)
	Delete(ctx context.Context, principal authz.Principal, id string) error
	Generate(ctx context.Context, req *models.GenerateRecipeRequest) (*models.GeneratedRecipe, error)
	SaveGenerated(ctx context.Context, principal authz.Principal, req *models.SaveGeneratedRequest) (*models.Recipe, error)
	RequestImageUpload(ctx context.Context, principal authz.Principal, id string) (*models.RecipeImageUploadResponse, error)
}

// UserServicer defines the interface for user profile operations.
type UserServicer interface {
	GetProfile(ctx context.Context, principal authz.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, principal authz.Principal, req *models.UpdateProfileRequest) (*models.User, error)
	SaveRecipe(ctx context.Context, principal authz.Principal, recipeID string) error
	UnsaveRecipe(ctx context.Context, principal authz.Principal, recipeID string) error
	ListSavedRecipes(ctx context.Context, principal authz.Principal) ([]models.Recipe, error)
	AddCalorieLogEntry(ctx context.Context, principal authz.Principal, req *models.AddCalorieLogRequest) (*models.CalorieLogEntry, error)
	GetCalorieLog(ctx context.Context, principal authz.Principal, query *models.CalorieLogQuery) ([]models.CalorieLogEntry, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// Ensure concrete types implement interfaces
var (
	_ AuthServicer   = (*AuthService)(nil)
	_ RecipeServicer = (*RecipeService)(nil)
	_ UserServicer   = (*UserService)(nil)
)
