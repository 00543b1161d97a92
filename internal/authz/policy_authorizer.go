package authz

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "recipehub/internal/errors"
	"recipehub/internal/models"
)

// RecipeFinder is the interface required by PolicyAuthorizer to look up
// recipes. This keeps the authorizer decoupled from the full repository.
type RecipeFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recipe, error)
}

// PolicyAuthorizer implements Authorizer with the ownership/visibility
// policy: a recipe is readable by its owner or by anyone when public, and
// mutable only by its owner.
type PolicyAuthorizer struct {
	recipes RecipeFinder

	// adminBypass grants admins read access to every recipe. It never
	// grants write or delete. Off unless explicitly enabled.
	adminBypass bool
}

// NewPolicyAuthorizer creates a PolicyAuthorizer.
func NewPolicyAuthorizer(recipes RecipeFinder, adminBypass bool) *PolicyAuthorizer {
	return &PolicyAuthorizer{
		recipes:     recipes,
		adminBypass: adminBypass,
	}
}

// AuthorizeRead decides whether the principal may read the recipe.
func (a *PolicyAuthorizer) AuthorizeRead(ctx context.Context, principal Principal, recipeID primitive.ObjectID) (*models.Recipe, error) {
	recipe, err := a.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if a.CanRead(principal, recipe) {
		return recipe, nil
	}

	log.Printf("authz: read denied: principal=%s recipe=%s", principal.ID.Hex(), recipeID.Hex())
	return nil, apperrors.ErrRecipeForbidden
}

// CanRead applies the read policy to an already-fetched recipe.
func (a *PolicyAuthorizer) CanRead(principal Principal, recipe *models.Recipe) bool {
	if recipe.Public || recipe.CreatedBy == principal.ID {
		return true
	}
	return a.adminBypass && principal.IsAdmin()
}

// AuthorizeMutate decides whether the principal may update or delete the
// recipe. Visibility is irrelevant here: a public recipe is still only
// writable by its owner, and admin bypass does not apply.
func (a *PolicyAuthorizer) AuthorizeMutate(ctx context.Context, principal Principal, recipeID primitive.ObjectID, op Operation) (*models.Recipe, error) {
	recipe, err := a.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if recipe.CreatedBy != principal.ID {
		log.Printf("authz: %s denied: principal=%s recipe=%s owner=%s",
			op, principal.ID.Hex(), recipeID.Hex(), recipe.CreatedBy.Hex())
		return nil, apperrors.ErrRecipeNotOwned
	}

	return recipe, nil
}

// VisibilityFilter returns the listing filter: owned or public recipes.
// With admin bypass enabled, admins see everything.
func (a *PolicyAuthorizer) VisibilityFilter(principal Principal) bson.M {
	if a.adminBypass && principal.IsAdmin() {
		return bson.M{}
	}
	return bson.M{
		"$or": []bson.M{
			{"createdBy": principal.ID},
			{"public": true},
		},
	}
}

// Ensure PolicyAuthorizer implements Authorizer
var _ Authorizer = (*PolicyAuthorizer)(nil)
