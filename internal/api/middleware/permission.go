package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/auth"
	"shopadmin/internal/authz"
	"shopadmin/internal/models"
)

// AccessDeniedMessage is the fixed body returned on every permission failure
const AccessDeniedMessage = "Access to this section is denied"

// RequirePermission guards a route behind a named permission. Users with the
// administrative flag pass unconditionally; everyone else must hold the
// permission through one of their roles.
func RequirePermission(gate *authz.Gate, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.GetUserFromContext(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
			c.Abort()
			return
		}

		if user.IsAdmin {
			c.Next()
			return
		}

		allowed, err := gate.Check(c.Request.Context(), user.ID, permission)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to check permissions"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, models.AccessDeniedResponse{Message: AccessDeniedMessage})
			c.Abort()
			return
		}

		c.Next()
	}
}
