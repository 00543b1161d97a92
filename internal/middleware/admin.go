package middleware

import (
	"recipehub/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireAdmin returns a middleware that rejects non-admin principals.
// It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Unauthorized(c, "user not authenticated")
			c.Abort()
			return
		}

		if !principal.IsAdmin() {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
