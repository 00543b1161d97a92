package service

import (
	"context"

	"recipehub/internal/authz"
	"recipehub/internal/cache"
	"recipehub/internal/models"
	"recipehub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CachedRecipeFinder is the recipe lookup used by the authorizer. Single
// recipe reads go through the cache; the writing paths in RecipeService
// invalidate the corresponding keys.
type CachedRecipeFinder struct {
	repo  repository.RecipeRepository
	cache cache.Cache
}

// Ensure CachedRecipeFinder implements authz.RecipeFinder
var _ authz.RecipeFinder = (*CachedRecipeFinder)(nil)

// NewCachedRecipeFinder creates a CachedRecipeFinder.
func NewCachedRecipeFinder(repo repository.RecipeRepository, cache cache.Cache) *CachedRecipeFinder {
	return &CachedRecipeFinder{repo: repo, cache: cache}
}

// FindByID returns a recipe by ID, serving from cache when possible.
func (f *CachedRecipeFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	cacheKey := cache.RecipeCacheKey(id.Hex())
	var cached models.Recipe
	found, err := f.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	recipe, err := f.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cache is best effort
	_ = f.cache.Set(ctx, cacheKey, recipe, recipeCacheTTL)

	return recipe, nil
}
