package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe sources.
const (
	// SourceUser marks a recipe authored by hand.
	SourceUser = "user"
	// SourceGenerated marks a recipe that was AI-generated and then saved.
	SourceGenerated = "ai"
)

// Recipe represents a recipe document.
//
// CreatedBy is assigned at creation time and never reassigned; Public may
// only be changed by the owner.
type Recipe struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Name              string             `json:"name" bson:"name" example:"Tomato Basil Pasta"`
	Ingredients       []string           `json:"ingredients" bson:"ingredients" example:"pasta,tomatoes,basil"`
	Instructions      string             `json:"instructions" bson:"instructions" example:"Boil the pasta..."`
	EstimatedCalories *int               `json:"estimatedCalories,omitempty" bson:"estimatedCalories,omitempty" example:"540"`
	CreatedBy         primitive.ObjectID `json:"createdBy" bson:"createdBy" example:"507f1f77bcf86cd799439012"`
	Public            bool               `json:"public" bson:"public" example:"false"`
	Source            string             `json:"source" bson:"source" example:"user"`
	ImageKey          string             `json:"-" bson:"imageKey,omitempty"`                                  // S3 key, not exposed in JSON
	ImageURL          string             `json:"imageUrl,omitempty" bson:"-" example:"https://bucket.s3.amazonaws.com/recipes/123.jpg?X-Amz-Signature=..."` // Pre-signed URL, not stored in DB
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T10:00:00Z"`
}

// RecipeIDParam binds the :id path segment of recipe routes. The objectid
// rule rejects non-canonical ids before the service layer sees them.
type RecipeIDParam struct {
	ID string `uri:"id" binding:"required,objectid"`
}

// SavedRecipeIDParam binds the :recipeId path segment of saved-recipes routes.
type SavedRecipeIDParam struct {
	RecipeID string `uri:"recipeId" binding:"required,objectid"`
}

// CreateRecipeRequest is the payload for creating a recipe.
type CreateRecipeRequest struct {
	Name              string   `json:"name" binding:"required,min=1,max=200" example:"Tomato Basil Pasta"`
	Ingredients       []string `json:"ingredients" binding:"required,min=1,dive,required" example:"pasta,tomatoes,basil"`
	Instructions      string   `json:"instructions" binding:"required" example:"Boil the pasta..."`
	EstimatedCalories *int     `json:"estimatedCalories" binding:"omitempty,gte=0" example:"540"`
	Public            bool     `json:"public" example:"false"`
}

// UpdateRecipeRequest is the payload for updating a recipe.
//
// Pointer fields distinguish "omitted" from "set to zero value", so an
// explicit estimatedCalories of 0 or an emptied instructions string is
// honored rather than silently dropped. CreatedBy and CreatedAt are not
// part of the payload and cannot be changed.
type UpdateRecipeRequest struct {
	Name              *string  `json:"name" binding:"omitempty,min=1,max=200" example:"Tomato Basil Pasta"`
	Ingredients       []string `json:"ingredients" binding:"omitempty,min=1,dive,required" example:"pasta,tomatoes,basil"`
	Instructions      *string  `json:"instructions" example:"Boil the pasta..."`
	EstimatedCalories *int     `json:"estimatedCalories" binding:"omitempty,gte=0" example:"540"`
	Public            *bool    `json:"public" example:"true"`
}

// GenerateRecipeRequest is the payload for AI recipe generation.
type GenerateRecipeRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,required" example:"chicken,rice,lime"`
	Preferences string   `json:"preferences" binding:"omitempty,max=200" example:"vegetarian"`
}

// GeneratedRecipe is a transient recipe produced by the generator.
// It is not persisted until the user saves it explicitly.
type GeneratedRecipe struct {
	Name              string   `json:"name" example:"Chicken Lime Rice"`
	Ingredients       []string `json:"ingredients" example:"chicken,rice,lime"`
	Instructions      string   `json:"instructions" example:"Season the chicken..."`
	EstimatedCalories int      `json:"estimatedCalories" example:"520"`
	EstimatedTime     int      `json:"estimatedTime" example:"30"` // minutes
	Servings          int      `json:"servings" example:"4"`
	Generated         bool     `json:"generated" example:"true"`
}

// SaveGeneratedRequest is the payload for persisting a generated recipe.
type SaveGeneratedRequest struct {
	Name              string   `json:"name" binding:"required,min=1,max=200" example:"Chicken Lime Rice"`
	Ingredients       []string `json:"ingredients" binding:"required,min=1,dive,required" example:"chicken,rice,lime"`
	Instructions      string   `json:"instructions" binding:"required" example:"Season the chicken..."`
	EstimatedCalories *int     `json:"estimatedCalories" binding:"omitempty,gte=0" example:"520"`
}

// RecipeImageUploadResponse is the response for requesting a recipe image upload.
type RecipeImageUploadResponse struct {
	Recipe    Recipe `json:"recipe"`
	UploadURL string `json:"uploadUrl" example:"https://s3.amazonaws.com/bucket/recipes/...?X-Amz-Algorithm=..."`
}
