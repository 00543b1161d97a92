// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"recipehub/internal/authz"
	"recipehub/internal/models"
)

// MockAuthService is a mock implementation of AuthServicer.
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	MeFunc             func(ctx context.Context, principal authz.Principal) (*models.User, error)
	ChangePasswordFunc func(ctx context.Context, principal authz.Principal, req *models.ChangePasswordRequest) error
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Me(ctx context.Context, principal authz.Principal) (*models.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, principal)
	}
	return nil, nil
}

func (m *MockAuthService) ChangePassword(ctx context.Context, principal authz.Principal, req *models.ChangePasswordRequest) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, principal, req)
	}
	return nil
}

// MockRecipeService is a mock implementation of RecipeServicer.
type MockRecipeService struct {
	ListFunc               func(ctx context.Context, principal authz.Principal) ([]models.Recipe, error)
	GetFunc                func(ctx context.Context, principal authz.Principal, id string) (*models.Recipe, error)
	CreateFunc             func(ctx context.Context, principal authz.Principal, req *models.CreateRecipeRequest) (*models.Recipe, error)
	UpdateFunc             func(ctx context.Context, principal authz.Principal, id string, req *models.UpdateRecipeRequest) (*models.Recipe, error)
	DeleteFunc             func(ctx context.Context, principal authz.Principal, id string) error
	GenerateFunc           func(ctx context.Context, req *models.GenerateRecipeRequest) (*models.GeneratedRecipe, error)
	SaveGeneratedFunc      func(ctx context.Context, principal authz.Principal, req *models.SaveGeneratedRequest) (*models.Recipe, error)
	RequestImageUploadFunc func(ctx context.Context, principal authz.Principal, id string) (*models.RecipeImageUploadResponse, error)
}

func (m *MockRecipeService) List(ctx context.Context, principal authz.Principal) ([]models.Recipe, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, principal)
	}
	return nil, nil
}

func (m *MockRecipeService) Get(ctx context.Context, principal authz.Principal, id string) (*models.Recipe, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, principal, id)
	}
	return nil, nil
}

func (m *MockRecipeService) Create(ctx context.Context, principal authz.Principal, req *models.CreateRecipeRequest) (*models.Recipe, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, principal, req)
	}
	return nil, nil
}

func (m *MockRecipeService) Update(ctx context.Context, principal authz.Principal, id string, req *models.UpdateRecipeRequest) (*models.Recipe, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, principal, id, req)
	}
	return nil, nil
}

func (m *MockRecipeService) Delete(ctx context.Context, principal authz.Principal, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, principal, id)
	}
	return nil
}

func (m *MockRecipeService) Generate(ctx context.Context, req *models.GenerateRecipeRequest) (*models.GeneratedRecipe, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockRecipeService) SaveGenerated(ctx context.Context, principal authz.Principal, req *models.SaveGeneratedRequest) (*models.Recipe, error) {
	if m.SaveGeneratedFunc != nil {
		return m.SaveGeneratedFunc(ctx, principal, req)
	}
	return nil, nil
}

func (m *MockRecipeService) RequestImageUpload(ctx context.Context, principal authz.Principal, id string) (*models.RecipeImageUploadResponse, error) {
	if m.RequestImageUploadFunc != nil {
		return m.RequestImageUploadFunc(ctx, principal, id)
	}
	return nil, nil
}

// MockUserService is a mock implementation of UserServicer.
type MockUserService struct {
	GetProfileFunc         func(ctx context.Context, principal authz.Principal) (*models.User, error)
	UpdateProfileFunc      func(ctx context.Context, principal authz.Principal, req *models.UpdateProfileRequest) (*models.User, error)
	SaveRecipeFunc         func(ctx context.Context, principal authz.Principal, recipeID string) error
	UnsaveRecipeFunc       func(ctx context.Context, principal authz.Principal, recipeID string) error
	ListSavedRecipesFunc   func(ctx context.Context, principal authz.Principal) ([]models.Recipe, error)
	AddCalorieLogEntryFunc func(ctx context.Context, principal authz.Principal, req *models.AddCalorieLogRequest) (*models.CalorieLogEntry, error)
	GetCalorieLogFunc      func(ctx context.Context, principal authz.Principal, query *models.CalorieLogQuery) ([]models.CalorieLogEntry, error)
	GetAllUsersFunc        func(ctx context.Context) ([]models.User, error)
}

func (m *MockUserService) GetProfile(ctx context.Context, principal authz.Principal) (*models.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, principal)
	}
	return nil, nil
}

func (m *MockUserService) UpdateProfile(ctx context.Context, principal authz.Principal, req *models.UpdateProfileRequest) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, principal, req)
	}
	return nil, nil
}

func (m *MockUserService) SaveRecipe(ctx context.Context, principal authz.Principal, recipeID string) error {
	if m.SaveRecipeFunc != nil {
		return m.SaveRecipeFunc(ctx, principal, recipeID)
	}
	return nil
}

func (m *MockUserService) UnsaveRecipe(ctx context.Context, principal authz.Principal, recipeID string) error {
	if m.UnsaveRecipeFunc != nil {
		return m.UnsaveRecipeFunc(ctx, principal, recipeID)
	}
	return nil
}

func (m *MockUserService) ListSavedRecipes(ctx context.Context, principal authz.Principal) ([]models.Recipe, error) {
	if m.ListSavedRecipesFunc != nil {
		return m.ListSavedRecipesFunc(ctx, principal)
	}
	return nil, nil
}

func (m *MockUserService) AddCalorieLogEntry(ctx context.Context, principal authz.Principal, req *models.AddCalorieLogRequest) (*models.CalorieLogEntry, error) {
	if m.AddCalorieLogEntryFunc != nil {
		return m.AddCalorieLogEntryFunc(ctx, principal, req)
	}
	return nil, nil
}

func (m *MockUserService) GetCalorieLog(ctx context.Context, principal authz.Principal, query *models.CalorieLogQuery) ([]models.CalorieLogEntry, error) {
	if m.GetCalorieLogFunc != nil {
		return m.GetCalorieLogFunc(ctx, principal, query)
	}
	return nil, nil
}

func (m *MockUserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	if m.GetAllUsersFunc != nil {
		return m.GetAllUsersFunc(ctx)
	}
	return nil, nil
}
