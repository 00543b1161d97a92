// Package authz decides who may read or mutate which recipe.
//
// Every check takes the Principal as an explicit parameter and returns a
// terminal decision: either the resource or an error, never both. Callers
// must branch on the error before touching the store, which makes
// "respond twice" or "keep processing after a denial" impossible by
// construction.
package authz

import (
	"recipehub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated identity making a request. It is derived
// from a verified token and lives for exactly one request; it is never
// read from ambient state.
type Principal struct {
	ID       primitive.ObjectID
	Username string
	Email    string
	Role     string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}
