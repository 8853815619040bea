package middleware

import (
	"net/http"
	"strings"

	"forotrix/utils"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer access token and stores the caller's id
// and role in the context. When roles are given, the caller's role must be
// one of them.
func RequireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		sub, role, err := utils.ValidateAccessToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
			c.Abort()
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if r == role {
					allowed = true
					break
				}
			}
			if !allowed {
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "insufficient role")
				c.Abort()
				return
			}
		}

		c.Set("userID", sub)
		c.Set("role", role)
		c.Next()
	}
}
