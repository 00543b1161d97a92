package authz

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"recipehub/internal/models"
)

// Operation identifies a mutating action on a recipe.
type Operation string

const (
	// OpUpdate is a partial update of a recipe's mutable fields.
	OpUpdate Operation = "update"
	// OpDelete is a hard delete of a recipe.
	OpDelete Operation = "delete"
)

// Authorizer defines the interface for recipe access decisions.
type Authorizer interface {
	// AuthorizeRead decides whether the principal may read the recipe.
	// On success it returns the recipe; otherwise ErrRecipeNotFound or
	// ErrRecipeForbidden. A returned error is terminal for the request.
	AuthorizeRead(ctx context.Context, principal Principal, recipeID primitive.ObjectID) (*models.Recipe, error)

	// AuthorizeMutate decides whether the principal may update or delete
	// the recipe. Only the owner may mutate, regardless of visibility.
	AuthorizeMutate(ctx context.Context, principal Principal, recipeID primitive.ObjectID, op Operation) (*models.Recipe, error)

	// CanRead reports whether the principal may read an already-fetched
	// recipe. It applies the same policy as AuthorizeRead without a store
	// lookup, for filtering recipes that are already in hand.
	CanRead(principal Principal, recipe *models.Recipe) bool

	// VisibilityFilter returns the store query fragment selecting exactly
	// the recipes the principal is entitled to see in listings.
	VisibilityFilter(principal Principal) bson.M
}
