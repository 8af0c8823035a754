package middleware

import (
	"net/http"
	"strings"

	"spendly-be/internal/jwt"
	"spendly-be/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and resolves the calling user.
// Deactivated accounts are rejected even if their token has not expired yet.
func AuthMiddleware(jwtService *jwt.JWTService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User account not found or deactivated",
			})
			c.Abort()
			return
		}

		// Make the resolved identity available to controllers
		c.Set("user_id", user.ID)
		c.Set("email", user.Email)

		c.Next()
	}
}
