package service

import (
	"context"
	"log"
	"time"

	"recipehub/internal/authz"
	"recipehub/internal/cache"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/generator"
	"recipehub/internal/models"
	"recipehub/internal/queue"
	"recipehub/internal/repository"
	"recipehub/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	recipeCacheTTL     = 15 * time.Minute
	presignedURLExpiry = 1 * time.Hour
	uploadURLExpiry    = 15 * time.Minute
	imageContentType   = "image/jpeg"
)

// RecipeService handles business logic for recipe operations. All access
// decisions are delegated to the authorizer; the service never inspects
// ownership or visibility itself.
type RecipeService struct {
	repo       repository.RecipeRepository
	authorizer authz.Authorizer
	cache      cache.Cache
	storage    storage.Storage
	queue      queue.Queue
	generator  generator.RecipeGenerator
}

// RecipeServiceConfig holds configuration for RecipeService.
type RecipeServiceConfig struct {
	Repo       repository.RecipeRepository
	Authorizer authz.Authorizer
	Cache      cache.Cache
	Storage    storage.Storage
	Queue      queue.Queue
	Generator  generator.RecipeGenerator
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(cfg RecipeServiceConfig) *RecipeService {
	return &RecipeService{
		repo:       cfg.Repo,
		authorizer: cfg.Authorizer,
		cache:      cfg.Cache,
		storage:    cfg.Storage,
		queue:      cfg.Queue,
		generator:  cfg.Generator,
	}
}

// List returns every recipe the principal may see, newest first.
func (s *RecipeService) List(ctx context.Context, principal authz.Principal) ([]models.Recipe, error) {
	recipes, err := s.repo.FindVisible(ctx, s.authorizer.VisibilityFilter(principal))
	if err != nil {
		return nil, err
	}

	s.attachImageURLs(ctx, recipes)

	return recipes, nil
}

// Get returns a single recipe if the principal may read it.
func (s *RecipeService) Get(ctx context.Context, principal authz.Principal, id string) (*models.Recipe, error) {
	recipeID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidRecipeID
	}

	recipe, err := s.authorizer.AuthorizeRead(ctx, principal, recipeID)
	if err != nil {
		return nil, err
	}

	s.attachImageURL(ctx, recipe)

	return recipe, nil
}

// Create stores a new recipe owned by the principal. Recipes default to
// private; without a calorie figure an estimation job is queued.
func (s *RecipeService) Create(ctx context.Context, principal authz.Principal, req *models.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Name:              req.Name,
		Ingredients:       req.Ingredients,
		Instructions:      req.Instructions,
		EstimatedCalories: req.EstimatedCalories,
		CreatedBy:         principal.ID,
		Public:            req.Public,
		Source:            models.SourceUser,
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	if recipe.EstimatedCalories == nil {
		s.enqueueEstimation(recipe)
	}

	return recipe, nil
}

// Update applies a partial update after an owner check.
func (s *RecipeService) Update(ctx context.Context, principal authz.Principal, id string, req *models.UpdateRecipeRequest) (*models.Recipe, error) {
	recipeID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidRecipeID
	}

	if _, err := s.authorizer.AuthorizeMutate(ctx, principal, recipeID, authz.OpUpdate); err != nil {
		return nil, err
	}

	recipe, err := s.repo.Update(ctx, recipeID, req)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.RecipeCacheKey(id))

	s.attachImageURL(ctx, recipe)

	return recipe, nil
}

// Delete removes a recipe after an owner check.
func (s *RecipeService) Delete(ctx context.Context, principal authz.Principal, id string) error {
	recipeID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrInvalidRecipeID
	}

	if _, err := s.authorizer.AuthorizeMutate(ctx, principal, recipeID, authz.OpDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recipeID); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.RecipeCacheKey(id))

	return nil
}

// Generate produces a transient recipe suggestion from ingredients.
func (s *RecipeService) Generate(ctx context.Context, req *models.GenerateRecipeRequest) (*models.GeneratedRecipe, error) {
	if len(req.Ingredients) == 0 {
		return nil, apperrors.ErrEmptyIngredientList
	}

	return s.generator.Generate(ctx, req.Ingredients, req.Preferences)
}

// SaveGenerated persists a previously generated recipe as a private
// recipe owned by the principal.
func (s *RecipeService) SaveGenerated(ctx context.Context, principal authz.Principal, req *models.SaveGeneratedRequest) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Name:              req.Name,
		Ingredients:       req.Ingredients,
		Instructions:      req.Instructions,
		EstimatedCalories: req.EstimatedCalories,
		CreatedBy:         principal.ID,
		Public:            false,
		Source:            models.SourceGenerated,
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	if recipe.EstimatedCalories == nil {
		s.enqueueEstimation(recipe)
	}

	return recipe, nil
}

// RequestImageUpload issues a pre-signed upload URL for the recipe's
// image. Only the owner may attach an image.
func (s *RecipeService) RequestImageUpload(ctx context.Context, principal authz.Principal, id string) (*models.RecipeImageUploadResponse, error) {
	recipeID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidRecipeID
	}

	recipe, err := s.authorizer.AuthorizeMutate(ctx, principal, recipeID, authz.OpUpdate)
	if err != nil {
		return nil, err
	}

	key := storage.ImageKey(recipeID)
	uploadURL, err := s.storage.GetPresignedPutURL(ctx, key, imageContentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetImageKey(ctx, recipeID, key); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.RecipeCacheKey(id))

	recipe.ImageKey = key
	s.attachImageURL(ctx, recipe)

	return &models.RecipeImageUploadResponse{
		Recipe:    *recipe,
		UploadURL: uploadURL,
	}, nil
}

// enqueueEstimation queues a background calorie estimation. Failure to
// enqueue is logged, not surfaced: the recipe is already stored.
func (s *RecipeService) enqueueEstimation(recipe *models.Recipe) {
	job := queue.EstimationJob{
		RecipeID:    recipe.ID,
		Name:        recipe.Name,
		Ingredients: recipe.Ingredients,
	}
	if err := s.queue.Enqueue(job); err != nil {
		log.Printf("Failed to enqueue estimation for recipe %s: %v", recipe.ID.Hex(), err)
	}
}

func (s *RecipeService) attachImageURL(ctx context.Context, recipe *models.Recipe) {
	if recipe.ImageKey == "" {
		return
	}
	url, err := s.storage.GetPresignedURL(ctx, recipe.ImageKey, presignedURLExpiry)
	if err != nil {
		// URL stays empty; the recipe itself is still served
		return
	}
	recipe.ImageURL = url
}

func (s *RecipeService) attachImageURLs(ctx context.Context, recipes []models.Recipe) {
	for i := range recipes {
		s.attachImageURL(ctx, &recipes[i])
	}
}
