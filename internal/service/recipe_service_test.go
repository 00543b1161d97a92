package service

import (
	"context"
	"testing"
	"time"

	"recipehub/internal/authz"
	cachemocks "recipehub/internal/cache/mocks"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/models"
	"recipehub/internal/queue"
	repomocks "recipehub/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

// stubStorage implements storage.Storage for testing.
type stubStorage struct {
	getURL string
	putURL string
	err    error
}

func (s *stubStorage) GetPresignedURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return s.getURL, s.err
}

func (s *stubStorage) GetPresignedPutURL(_ context.Context, _, _ string, _ time.Duration) (string, error) {
	return s.putURL, s.err
}

// stubGenerator implements generator.RecipeGenerator for testing.
type stubGenerator struct {
	recipe *models.GeneratedRecipe
	err    error
}

func (g *stubGenerator) Generate(_ context.Context, ingredients []string, _ string) (*models.GeneratedRecipe, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.recipe != nil {
		return g.recipe, nil
	}
	return &models.GeneratedRecipe{
		Name:        "Generated",
		Ingredients: ingredients,
		Generated:   true,
	}, nil
}

type recipeServiceDeps struct {
	repo    *repomocks.MockRecipeRepository
	cache   *cachemocks.MockCache
	storage *stubStorage
	queue   *queue.MemoryQueue
	gen     *stubGenerator
}

func newTestRecipeService(ctrl *gomock.Controller, adminBypass bool) (*RecipeService, *recipeServiceDeps) {
	deps := &recipeServiceDeps{
		repo:    repomocks.NewMockRecipeRepository(ctrl),
		cache:   cachemocks.NewMockCache(ctrl),
		storage: &stubStorage{},
		queue:   queue.NewMemoryQueue(10),
		gen:     &stubGenerator{},
	}

	svc := NewRecipeService(RecipeServiceConfig{
		Repo:       deps.repo,
		Authorizer: authz.NewPolicyAuthorizer(deps.repo, adminBypass),
		Cache:      deps.cache,
		Storage:    deps.storage,
		Queue:      deps.queue,
		Generator:  deps.gen,
	})
	return svc, deps
}

func ownedRecipe(owner primitive.ObjectID, public bool) *models.Recipe {
	return &models.Recipe{
		ID:           primitive.NewObjectID(),
		Name:         "Tomato Pasta",
		Ingredients:  []string{"pasta", "tomatoes"},
		Instructions: "Boil the pasta.",
		CreatedBy:    owner,
		Public:       public,
		Source:       models.SourceUser,
	}
}

func TestRecipeService_List(t *testing.T) {
	t.Run("queries with the principal's visibility filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		principal := testPrincipal(primitive.NewObjectID())

		deps.repo.EXPECT().
			FindVisible(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter bson.M) ([]models.Recipe, error) {
				or, ok := filter["$or"].([]bson.M)
				require.True(t, ok)
				assert.Contains(t, or, bson.M{"createdBy": principal.ID})
				assert.Contains(t, or, bson.M{"public": true})
				return []models.Recipe{*ownedRecipe(principal.ID, false)}, nil
			})

		recipes, err := svc.List(context.Background(), principal)

		require.NoError(t, err)
		assert.Len(t, recipes, 1)
	})

	t.Run("attaches pre-signed image URLs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		deps.storage.getURL = "https://bucket/recipes/x.jpg?sig=abc"
		principal := testPrincipal(primitive.NewObjectID())

		withImage := *ownedRecipe(principal.ID, false)
		withImage.ImageKey = "recipes/x.jpg"
		withoutImage := *ownedRecipe(principal.ID, false)

		deps.repo.EXPECT().
			FindVisible(gomock.Any(), gomock.Any()).
			Return([]models.Recipe{withImage, withoutImage}, nil)

		recipes, err := svc.List(context.Background(), principal)

		require.NoError(t, err)
		assert.Equal(t, "https://bucket/recipes/x.jpg?sig=abc", recipes[0].ImageURL)
		assert.Empty(t, recipes[1].ImageURL)
	})
}

func TestRecipeService_Get(t *testing.T) {
	t.Run("returns invalid id error for malformed hex", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestRecipeService(ctrl, false)

		recipe, err := svc.Get(context.Background(), testPrincipal(primitive.NewObjectID()), "not-an-id")

		assert.Nil(t, recipe)
		assert.Equal(t, apperrors.ErrInvalidRecipeID, err)
	})

	t.Run("owner reads own private recipe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		principal := testPrincipal(primitive.NewObjectID())
		recipe := ownedRecipe(principal.ID, false)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)

		got, err := svc.Get(context.Background(), principal, recipe.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, recipe.ID, got.ID)
	})

	t.Run("denies another user's private recipe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		recipe := ownedRecipe(primitive.NewObjectID(), false)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)

		got, err := svc.Get(context.Background(), testPrincipal(primitive.NewObjectID()), recipe.ID.Hex())

		assert.Nil(t, got)
		assert.Equal(t, apperrors.ErrRecipeForbidden, err)
	})

	t.Run("anyone reads a public recipe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		recipe := ownedRecipe(primitive.NewObjectID(), true)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)

		got, err := svc.Get(context.Background(), testPrincipal(primitive.NewObjectID()), recipe.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, recipe.ID, got.ID)
	})
}

func TestRecipeService_Create(t *testing.T) {
	t.Run("assigns owner and queues estimation when calories missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		principal := testPrincipal(primitive.NewObjectID())

		recipeID := primitive.NewObjectID()
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, recipe *models.Recipe) error {
				assert.Equal(t, principal.ID, recipe.CreatedBy)
				assert.False(t, recipe.Public)
				assert.Equal(t, models.SourceUser, recipe.Source)
				recipe.ID = recipeID
				return nil
			})

		recipe, err := svc.Create(context.Background(), principal, &models.CreateRecipeRequest{
			Name:         "Tomato Pasta",
			Ingredients:  []string{"pasta", "tomatoes"},
			Instructions: "Boil the pasta.",
		})

		require.NoError(t, err)
		assert.Equal(t, recipeID, recipe.ID)
		require.Equal(t, 1, deps.queue.Len())

		job, err := deps.queue.Dequeue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, recipeID, job.RecipeID)
		assert.Equal(t, "Tomato Pasta", job.Name)
	})

	t.Run("skips estimation when calories provided", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		calories := 540

		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Create(context.Background(), testPrincipal(primitive.NewObjectID()), &models.CreateRecipeRequest{
			Name:              "Tomato Pasta",
			Ingredients:       []string{"pasta"},
			Instructions:      "Boil.",
			EstimatedCalories: &calories,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, deps.queue.Len())
	})
}

func TestRecipeService_Update(t *testing.T) {
	t.Run("owner updates recipe and cache entry is invalidated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		principal := testPrincipal(primitive.NewObjectID())
		recipe := ownedRecipe(principal.ID, false)

		newName := "Renamed"
		updated := *recipe
		updated.Name = newName

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)
		deps.repo.EXPECT().
			Update(gomock.Any(), recipe.ID, gomock.Any()).
			Return(&updated, nil)
		deps.cache.EXPECT().
			Delete(gomock.Any(), "recipe:"+recipe.ID.Hex()).
			Return(nil)

		got, err := svc.Update(context.Background(), principal, recipe.ID.Hex(), &models.UpdateRecipeRequest{Name: &newName})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})

	t.Run("non-owner cannot update even a public recipe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		recipe := ownedRecipe(primitive.NewObjectID(), true)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)

		newName := "Hijacked"
		got, err := svc.Update(context.Background(), testPrincipal(primitive.NewObjectID()), recipe.ID.Hex(), &models.UpdateRecipeRequest{Name: &newName})

		assert.Nil(t, got)
		assert.Equal(t, apperrors.ErrRecipeNotOwned, err)
	})

	t.Run("admin cannot update another user's recipe despite bypass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, true)
		recipe := ownedRecipe(primitive.NewObjectID(), false)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)

		admin := authz.Principal{ID: primitive.NewObjectID(), Username: "root", Role: models.RoleAdmin}
		newName := "Hijacked"
		got, err := svc.Update(context.Background(), admin, recipe.ID.Hex(), &models.UpdateRecipeRequest{Name: &newName})

		assert.Nil(t, got)
		assert.Equal(t, apperrors.ErrRecipeNotOwned, err)
	})
}

func TestRecipeService_Delete(t *testing.T) {
	t.Run("owner deletes recipe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		principal := testPrincipal(primitive.NewObjectID())
		recipe := ownedRecipe(principal.ID, false)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)
		deps.repo.EXPECT().
			Delete(gomock.Any(), recipe.ID).
			Return(nil)
		deps.cache.EXPECT().
			Delete(gomock.Any(), "recipe:"+recipe.ID.Hex()).
			Return(nil)

		err := svc.Delete(context.Background(), principal, recipe.ID.Hex())

		assert.NoError(t, err)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		recipe := ownedRecipe(primitive.NewObjectID(), true)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)

		err := svc.Delete(context.Background(), testPrincipal(primitive.NewObjectID()), recipe.ID.Hex())

		assert.Equal(t, apperrors.ErrRecipeNotOwned, err)
	})

	t.Run("missing recipe yields not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		recipeID := primitive.NewObjectID()

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipeID).
			Return(nil, apperrors.ErrRecipeNotFound)

		err := svc.Delete(context.Background(), testPrincipal(primitive.NewObjectID()), recipeID.Hex())

		assert.Equal(t, apperrors.ErrRecipeNotFound, err)
	})
}

func TestRecipeService_Generate(t *testing.T) {
	t.Run("rejects empty ingredient list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestRecipeService(ctrl, false)

		recipe, err := svc.Generate(context.Background(), &models.GenerateRecipeRequest{})

		assert.Nil(t, recipe)
		assert.Equal(t, apperrors.ErrEmptyIngredientList, err)
	})

	t.Run("delegates to the generator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newTestRecipeService(ctrl, false)

		recipe, err := svc.Generate(context.Background(), &models.GenerateRecipeRequest{
			Ingredients: []string{"chicken", "rice"},
		})

		require.NoError(t, err)
		assert.True(t, recipe.Generated)
		assert.Equal(t, []string{"chicken", "rice"}, recipe.Ingredients)
	})
}

func TestRecipeService_SaveGenerated(t *testing.T) {
	t.Run("persists as a private AI-sourced recipe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		principal := testPrincipal(primitive.NewObjectID())

		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, recipe *models.Recipe) error {
				assert.Equal(t, principal.ID, recipe.CreatedBy)
				assert.False(t, recipe.Public)
				assert.Equal(t, models.SourceGenerated, recipe.Source)
				recipe.ID = primitive.NewObjectID()
				return nil
			})

		recipe, err := svc.SaveGenerated(context.Background(), principal, &models.SaveGeneratedRequest{
			Name:         "Chicken Lime Rice",
			Ingredients:  []string{"chicken", "rice", "lime"},
			Instructions: "Season the chicken.",
		})

		require.NoError(t, err)
		assert.Equal(t, models.SourceGenerated, recipe.Source)
		assert.Equal(t, 1, deps.queue.Len())
	})
}

func TestRecipeService_RequestImageUpload(t *testing.T) {
	t.Run("owner receives an upload URL and the image key is stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		deps.storage.putURL = "https://bucket/upload?sig=abc"
		deps.storage.getURL = "https://bucket/get?sig=def"
		principal := testPrincipal(primitive.NewObjectID())
		recipe := ownedRecipe(principal.ID, false)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)
		deps.repo.EXPECT().
			SetImageKey(gomock.Any(), recipe.ID, "recipes/"+recipe.ID.Hex()+".jpg").
			Return(nil)
		deps.cache.EXPECT().
			Delete(gomock.Any(), "recipe:"+recipe.ID.Hex()).
			Return(nil)

		resp, err := svc.RequestImageUpload(context.Background(), principal, recipe.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, "https://bucket/upload?sig=abc", resp.UploadURL)
		assert.Equal(t, "https://bucket/get?sig=def", resp.Recipe.ImageURL)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, deps := newTestRecipeService(ctrl, false)
		recipe := ownedRecipe(primitive.NewObjectID(), true)

		deps.repo.EXPECT().
			FindByID(gomock.Any(), recipe.ID).
			Return(recipe, nil)

		resp, err := svc.RequestImageUpload(context.Background(), testPrincipal(primitive.NewObjectID()), recipe.ID.Hex())

		assert.Nil(t, resp)
		assert.Equal(t, apperrors.ErrRecipeNotOwned, err)
	})
}
