package service

import (
	"context"
	"time"

	"recipehub/internal/authz"
	"recipehub/internal/cache"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/models"
	"recipehub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const calorieLogDateLayout = "2006-01-02"

// UserService handles business logic for user profile operations.
type UserService struct {
	users      repository.UserRepository
	recipes    repository.RecipeRepository
	authorizer authz.Authorizer
	cache      cache.Cache
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, recipes repository.RecipeRepository, authorizer authz.Authorizer, cache cache.Cache) *UserService {
	return &UserService{
		users:      users,
		recipes:    recipes,
		authorizer: authorizer,
		cache:      cache,
	}
}

// GetProfile returns the principal's user document (with caching).
func (s *UserService) GetProfile(ctx context.Context, principal authz.Principal) (*models.User, error) {
	cacheKey := cache.UserCacheKey(principal.ID.Hex())
	var cached models.User
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, cacheKey, user, userCacheTTL)

	return user, nil
}

// UpdateProfile updates the principal's username and/or email.
func (s *UserService) UpdateProfile(ctx context.Context, principal authz.Principal, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.UpdateProfile(ctx, principal.ID, req)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(principal.ID.Hex()))

	return user, nil
}

// SaveRecipe adds a recipe to the principal's saved list. The recipe must
// be readable by the principal: saving is not a way around visibility.
func (s *UserService) SaveRecipe(ctx context.Context, principal authz.Principal, recipeID string) error {
	id, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return apperrors.ErrInvalidRecipeID
	}

	if _, err := s.authorizer.AuthorizeRead(ctx, principal, id); err != nil {
		return err
	}

	if err := s.users.AddSavedRecipe(ctx, principal.ID, id); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(principal.ID.Hex()))

	return nil
}

// UnsaveRecipe removes a recipe from the principal's saved list. Removing
// an absent entry is a no-op, so a recipe that later went private can
// still be unsaved.
func (s *UserService) UnsaveRecipe(ctx context.Context, principal authz.Principal, recipeID string) error {
	id, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return apperrors.ErrInvalidRecipeID
	}

	if err := s.users.RemoveSavedRecipe(ctx, principal.ID, id); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(principal.ID.Hex()))

	return nil
}

// ListSavedRecipes returns the saved recipes the principal can still
// read. Entries that were deleted, or went private since saving, are
// silently dropped from the result.
func (s *UserService) ListSavedRecipes(ctx context.Context, principal authz.Principal) ([]models.Recipe, error) {
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.FindByIDs(ctx, user.SavedRecipes)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Recipe, 0, len(recipes))
	for i := range recipes {
		if s.authorizer.CanRead(principal, &recipes[i]) {
			visible = append(visible, recipes[i])
		}
	}

	return visible, nil
}

// AddCalorieLogEntry appends a daily entry to the principal's calorie log.
func (s *UserService) AddCalorieLogEntry(ctx context.Context, principal authz.Principal, req *models.AddCalorieLogRequest) (*models.CalorieLogEntry, error) {
	date, err := time.Parse(calorieLogDateLayout, req.Date)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}

	entry := models.CalorieLogEntry{
		Date:             date,
		CaloriesConsumed: req.CaloriesConsumed,
		CaloriesBurned:   req.CaloriesBurned,
	}

	if err := s.users.AddCalorieLogEntry(ctx, principal.ID, entry); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(principal.ID.Hex()))

	return &entry, nil
}

// GetCalorieLog returns the principal's calorie log, optionally filtered
// to an inclusive date range.
func (s *UserService) GetCalorieLog(ctx context.Context, principal authz.Principal, query *models.CalorieLogQuery) ([]models.CalorieLogEntry, error) {
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	if query.StartDate != "" {
		start, err = time.Parse(calorieLogDateLayout, query.StartDate)
		if err != nil {
			return nil, apperrors.ErrInvalidDate
		}
	}
	if query.EndDate != "" {
		end, err = time.Parse(calorieLogDateLayout, query.EndDate)
		if err != nil {
			return nil, apperrors.ErrInvalidDate
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return nil, apperrors.ErrInvalidDateRange
	}

	entries := make([]models.CalorieLogEntry, 0, len(user.CalorieLog))
	for _, entry := range user.CalorieLog {
		if !start.IsZero() && entry.Date.Before(start) {
			continue
		}
		if !end.IsZero() && entry.Date.After(end) {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetAllUsers retrieves all users. Restricted to admins at the routing
// layer.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}
