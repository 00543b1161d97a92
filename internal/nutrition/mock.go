package nutrition

import (
	"context"
	"time"
)

// MockEstimator is a deterministic Estimator for development and testing.
// It charges a flat base plus a per-ingredient amount, so estimates are
// stable across runs without any external service.
type MockEstimator struct {
	// SimulatedDelay is the time to simulate estimation processing.
	SimulatedDelay time.Duration
	// BaseCalories is the starting estimate for any recipe.
	BaseCalories int
	// PerIngredient is added for each ingredient in the recipe.
	PerIngredient int
}

// Ensure MockEstimator implements Estimator
var _ Estimator = (*MockEstimator)(nil)

// NewMockEstimator creates a MockEstimator with default settings.
func NewMockEstimator() *MockEstimator {
	return &MockEstimator{
		SimulatedDelay: 500 * time.Millisecond,
		BaseCalories:   150,
		PerIngredient:  90,
	}
}

// EstimateCalories simulates a calorie estimation.
func (m *MockEstimator) EstimateCalories(ctx context.Context, _ string, ingredients []string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(m.SimulatedDelay):
	}

	return m.BaseCalories + m.PerIngredient*len(ingredients), nil
}
