// Package nutrition provides calorie estimation for recipes.
package nutrition

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"recipehub/internal/generator"
)

// Estimator defines the interface for calorie estimation.
type Estimator interface {
	// EstimateCalories returns the estimated total calories for a recipe.
	EstimateCalories(ctx context.Context, name string, ingredients []string) (int, error)
}

const estimatorSystemPrompt = "You are a nutrition expert providing accurate calorie estimations."

var numberPattern = regexp.MustCompile(`\d+`)

// AIEstimator asks a chat completion backend for a calorie estimate.
type AIEstimator struct {
	completer generator.Completer
}

// Ensure AIEstimator implements Estimator
var _ Estimator = (*AIEstimator)(nil)

// NewAIEstimator creates an estimator backed by a chat completion client.
func NewAIEstimator(completer generator.Completer) *AIEstimator {
	return &AIEstimator{completer: completer}
}

// EstimateCalories queries the backend and extracts the first number from
// its reply. The model is instructed to answer with a bare number, but
// replies like "around 540 calories" still parse.
func (e *AIEstimator) EstimateCalories(ctx context.Context, name string, ingredients []string) (int, error) {
	prompt := fmt.Sprintf(
		"Estimate the total calories in this recipe called '%s' with these ingredients: %s. Return only a number representing the total calories.",
		name, strings.Join(ingredients, ", "),
	)

	content, err := e.completer.Complete(ctx, estimatorSystemPrompt, prompt, 0.3, 50)
	if err != nil {
		return 0, fmt.Errorf("calorie estimation failed: %w", err)
	}

	match := numberPattern.FindString(content)
	if match == "" {
		return 0, fmt.Errorf("no calorie value in response %q", content)
	}

	calories, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("invalid calorie value %q: %w", match, err)
	}

	return calories, nil
}
