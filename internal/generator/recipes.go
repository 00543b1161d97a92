package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"recipehub/internal/models"
)

// RecipeGenerator produces a recipe suggestion from a list of ingredients.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients []string, preferences string) (*models.GeneratedRecipe, error)
}

// Service generates recipes through a chat completion backend, falling
// back to a built-in recipe catalog when the backend is unavailable.
type Service struct {
	completer Completer
	enabled   bool
}

// Ensure Service implements RecipeGenerator
var _ RecipeGenerator = (*Service)(nil)

// NewService creates a recipe generator. When enabled is false (no API
// key configured) every request is served from the fallback catalog.
func NewService(completer Completer, enabled bool) *Service {
	return &Service{completer: completer, enabled: enabled}
}

const recipeSystemPrompt = "You are a professional chef providing detailed, accurate recipes."

// generatedPayload mirrors the JSON shape the model is asked to produce.
type generatedPayload struct {
	Name              string   `json:"name"`
	Ingredients       []string `json:"ingredients"`
	Instructions      string   `json:"instructions"`
	EstimatedCalories int      `json:"estimatedCalories"`
	EstimatedTime     int      `json:"estimatedTime"`
	Servings          int      `json:"servings"`
}

// Generate builds a recipe from the given ingredients. Backend and parse
// failures degrade to the fallback catalog rather than erroring, so the
// endpoint stays usable without an API key.
func (s *Service) Generate(ctx context.Context, ingredients []string, preferences string) (*models.GeneratedRecipe, error) {
	if !s.enabled {
		return fallbackRecipe(ingredients, preferences), nil
	}

	content, err := s.completer.Complete(ctx, recipeSystemPrompt, buildRecipePrompt(ingredients, preferences), 0.7, 1000)
	if err != nil {
		log.Printf("Recipe generation backend failed, using fallback: %v", err)
		return fallbackRecipe(ingredients, preferences), nil
	}

	recipe, err := parseGeneratedRecipe(content)
	if err != nil {
		log.Printf("Failed to parse generated recipe, using fallback: %v", err)
		return fallbackRecipe(ingredients, preferences), nil
	}

	return recipe, nil
}

func buildRecipePrompt(ingredients []string, preferences string) string {
	var b strings.Builder
	b.WriteString("Generate a recipe using these ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	if preferences != "" {
		b.WriteString("\nDietary preferences/requirements: ")
		b.WriteString(preferences)
	}
	b.WriteString("\n")
	b.WriteString(`Format the response as a JSON object with the following structure: {"name": "Recipe Name", "ingredients": ["ingredient 1", "ingredient 2", ...], "instructions": "Step-by-step instructions", "estimatedCalories": approximate_calories_as_number, "estimatedTime": cooking_time_in_minutes, "servings": number_of_servings}`)
	return b.String()
}

// parseGeneratedRecipe extracts the recipe JSON from a model response.
// Models sometimes wrap the JSON in prose, so a failed full parse retries
// on the outermost brace-delimited slice.
func parseGeneratedRecipe(content string) (*models.GeneratedRecipe, error) {
	content = strings.TrimSpace(content)

	var payload generatedPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON object found in response")
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
		}
	}

	if payload.Name == "" || len(payload.Ingredients) == 0 || payload.Instructions == "" {
		return nil, fmt.Errorf("generated recipe is missing required fields")
	}

	if payload.EstimatedTime <= 0 {
		payload.EstimatedTime = 30
	}
	if payload.Servings <= 0 {
		payload.Servings = 4
	}

	return &models.GeneratedRecipe{
		Name:              payload.Name,
		Ingredients:       payload.Ingredients,
		Instructions:      payload.Instructions,
		EstimatedCalories: payload.EstimatedCalories,
		EstimatedTime:     payload.EstimatedTime,
		Servings:          payload.Servings,
		Generated:         true,
	}, nil
}
