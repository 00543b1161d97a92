// Package fixtures provides test data builders for unit and integration tests.
package fixtures

import (
	"fmt"
	"time"

	"recipehub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ===== User Fixtures =====

// UserBuilder provides fluent API for building test users.
type UserBuilder struct {
	user models.User
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: models.User{
			ID:           primitive.NewObjectID(),
			Username:     fmt.Sprintf("user-%s", primitive.NewObjectID().Hex()[:8]),
			Email:        fmt.Sprintf("test-%s@example.com", primitive.NewObjectID().Hex()[:8]),
			Password:     "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", // "password123" hashed
			Role:         models.RoleUser,
			SavedRecipes: []primitive.ObjectID{},
			CalorieLog:   []models.CalorieLogEntry{},
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		},
	}
}

func (b *UserBuilder) WithID(id primitive.ObjectID) *UserBuilder {
	b.user.ID = id
	return b
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.user.Username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

func (b *UserBuilder) WithPassword(hash string) *UserBuilder {
	b.user.Password = hash
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.user.Role = models.RoleAdmin
	return b
}

func (b *UserBuilder) WithSavedRecipes(ids ...primitive.ObjectID) *UserBuilder {
	b.user.SavedRecipes = ids
	return b
}

func (b *UserBuilder) WithCalorieLog(entries ...models.CalorieLogEntry) *UserBuilder {
	b.user.CalorieLog = entries
	return b
}

func (b *UserBuilder) Build() models.User {
	return b.user
}

func (b *UserBuilder) BuildPtr() *models.User {
	return &b.user
}

// ===== Recipe Fixtures =====

// RecipeBuilder provides fluent API for building test recipes.
type RecipeBuilder struct {
	recipe models.Recipe
}

// NewRecipe creates a new RecipeBuilder with sensible defaults:
// a private, user-authored recipe owned by a fresh user.
func NewRecipe() *RecipeBuilder {
	return &RecipeBuilder{
		recipe: models.Recipe{
			ID:           primitive.NewObjectID(),
			Name:         fmt.Sprintf("Test Recipe %s", primitive.NewObjectID().Hex()[:8]),
			Ingredients:  []string{"flour", "water", "salt"},
			Instructions: "Mix everything and bake.",
			CreatedBy:    primitive.NewObjectID(),
			Public:       false,
			Source:       models.SourceUser,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		},
	}
}

func (b *RecipeBuilder) WithID(id primitive.ObjectID) *RecipeBuilder {
	b.recipe.ID = id
	return b
}

func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.recipe.Name = name
	return b
}

func (b *RecipeBuilder) WithIngredients(ingredients ...string) *RecipeBuilder {
	b.recipe.Ingredients = ingredients
	return b
}

func (b *RecipeBuilder) WithInstructions(instructions string) *RecipeBuilder {
	b.recipe.Instructions = instructions
	return b
}

func (b *RecipeBuilder) WithOwner(ownerID primitive.ObjectID) *RecipeBuilder {
	b.recipe.CreatedBy = ownerID
	return b
}

func (b *RecipeBuilder) Public() *RecipeBuilder {
	b.recipe.Public = true
	return b
}

func (b *RecipeBuilder) WithCalories(calories int) *RecipeBuilder {
	b.recipe.EstimatedCalories = &calories
	return b
}

func (b *RecipeBuilder) Generated() *RecipeBuilder {
	b.recipe.Source = models.SourceGenerated
	return b
}

func (b *RecipeBuilder) WithImageKey(key string) *RecipeBuilder {
	b.recipe.ImageKey = key
	return b
}

func (b *RecipeBuilder) Build() models.Recipe {
	return b.recipe
}

func (b *RecipeBuilder) BuildPtr() *models.Recipe {
	return &b.recipe
}

// ===== Calorie Log Fixtures =====

// LogEntry builds a calorie log entry for the given day.
func LogEntry(year int, month time.Month, day, consumed, burned int) models.CalorieLogEntry {
	return models.CalorieLogEntry{
		Date:             time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		CaloriesConsumed: consumed,
		CaloriesBurned:   burned,
	}
}
