package middleware

import (
	"net/http"
	"slices"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles admits callers holding at least one of allowed. Callers the
// auth middleware did not identify get 401; identified callers without a
// matching role get 403 listing the roles the route needs.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := ClientRoles(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		permitted := slices.ContainsFunc(roles, func(role string) bool {
			return slices.Contains(allowed, role)
		})
		if !permitted {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":          "insufficient permissions",
				"required_roles": allowed,
			})
			return
		}
		c.Next()
	}
}

// RequireAuthor guards course, lecture and test authoring routes.
func RequireAuthor() gin.HandlerFunc {
	return RequireRoles(models.AuthorRole)
}
