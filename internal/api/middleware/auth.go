package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shopadmin/internal/auth"
	"shopadmin/internal/repository"
)

// AuthMiddleware validates bearer tokens and loads the authenticated user
type AuthMiddleware struct {
	authService *auth.Service
	userRepo    repository.UserRepository
}

// NewAuthMiddleware creates an authentication middleware
func NewAuthMiddleware(authService *auth.Service, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// AuthRequired rejects requests without a valid bearer token and stores the
// full user object with its roles in the context.
func (m *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		userIDStr, ok := (*claims)["user_id"].(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id in token"})
			c.Abort()
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}
		if !user.Active {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account is inactive"})
			c.Abort()
			return
		}

		roles, err := m.userRepo.GetRoles(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user roles"})
			c.Abort()
			return
		}
		user.Roles = roles

		c.Set("user", user)
		c.Set("is_admin", user.IsAdmin)

		c.Next()
	}
}
