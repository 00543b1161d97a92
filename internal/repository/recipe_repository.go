// Package repository provides data access operations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository defines the interface for recipe data operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
	FindVisible(ctx context.Context, filter bson.M) ([]models.Recipe, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Recipe, error)
	Update(ctx context.Context, id primitive.ObjectID, update *models.UpdateRecipeRequest) (*models.Recipe, error)
	SetEstimatedCalories(ctx context.Context, id primitive.ObjectID, calories int) error
	SetImageKey(ctx context.Context, id primitive.ObjectID, key string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// recipeRepository implements RecipeRepository using MongoDB.
type recipeRepository struct {
	collection *mongo.Collection
}

// NewRecipeRepository creates a new RecipeRepository.
func NewRecipeRepository(db *mongo.Database) RecipeRepository {
	return &recipeRepository{
		collection: db.Collection("recipes"),
	}
}

// Create inserts a new recipe into the database.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	if recipe.Source == "" {
		recipe.Source = models.SourceUser
	}

	result, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		return err
	}

	recipe.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a recipe by its ID.
func (r *recipeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error) {
	var recipe models.Recipe

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, err
	}

	return &recipe, nil
}

// FindVisible returns all recipes matching the given visibility filter,
// newest first. Ties on createdAt break deterministically by ascending id.
func (r *recipeRepository) FindVisible(ctx context.Context, filter bson.M) ([]models.Recipe, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	return recipes, nil
}

// FindByIDs returns the recipes whose IDs appear in the given list.
// Missing IDs are skipped silently.
func (r *recipeRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	return r.FindVisible(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// Update applies the provided fields to a recipe. Only fields present in
// the request (non-nil pointers, non-nil slices) are written; createdBy
// and createdAt are never part of the update document.
func (r *recipeRepository) Update(ctx context.Context, id primitive.ObjectID, update *models.UpdateRecipeRequest) (*models.Recipe, error) {
	updateDoc := bson.M{"updatedAt": time.Now()}

	if update.Name != nil {
		updateDoc["name"] = *update.Name
	}
	if update.Ingredients != nil {
		updateDoc["ingredients"] = update.Ingredients
	}
	if update.Instructions != nil {
		updateDoc["instructions"] = *update.Instructions
	}
	if update.EstimatedCalories != nil {
		updateDoc["estimatedCalories"] = *update.EstimatedCalories
	}
	if update.Public != nil {
		updateDoc["public"] = *update.Public
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateDoc}, opts)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, result.Err()
	}

	var recipe models.Recipe
	if err := result.Decode(&recipe); err != nil {
		return nil, err
	}

	return &recipe, nil
}

// SetEstimatedCalories writes the estimated calorie count for a recipe.
// Used by the estimation worker, so it bypasses the request update path.
func (r *recipeRepository) SetEstimatedCalories(ctx context.Context, id primitive.ObjectID, calories int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"estimatedCalories": calories,
			"updatedAt":         time.Now(),
		},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrRecipeNotFound
	}

	return nil
}

// SetImageKey stores the object storage key for a recipe's image.
func (r *recipeRepository) SetImageKey(ctx context.Context, id primitive.ObjectID, key string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"imageKey":  key,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrRecipeNotFound
	}

	return nil
}

// Delete removes a recipe from the database.
func (r *recipeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrRecipeNotFound
	}

	return nil
}
