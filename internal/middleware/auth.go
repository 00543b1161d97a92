// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"context"
	"errors"
	"strings"

	"recipehub/internal/authz"
	"recipehub/internal/models"
	"recipehub/pkg/auth"
	"recipehub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys for storing request identity
const (
	PrincipalKey = "principal"
)

// UserSource resolves the authenticated user behind a token. The role on the
// stored user document is authoritative, not whatever the token was minted with.
type UserSource interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Auth returns a middleware that validates JWT tokens and attaches the
// resolved principal to the request context.
func Auth(tokens auth.TokenManager, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// Validate token
		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, "token expired")
			} else {
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// Tokens outlive account deletion, so confirm the user still exists.
		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			response.Unauthorized(c, "user no longer exists")
			c.Abort()
			return
		}

		c.Set(PrincipalKey, authz.Principal{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})

		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(c *gin.Context) (authz.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return authz.Principal{}, false
	}
	principal, ok := v.(authz.Principal)
	return principal, ok
}
