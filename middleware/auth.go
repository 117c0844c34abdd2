package middleware

import (
	"strings"

	"notesvc/services"
	"notesvc/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer credential into a user identity and
// stores it in the context as "user_id". Handlers behind it never see a
// request without one.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if services.IsTokenBlacklisted(c.Request.Context(), tokenString) {
			utils.Unauthorized(c, "Token has been invalidated")
			c.Abort()
			return
		}

		userID, err := services.ParseToken(tokenString, "access")
		if err != nil {
			utils.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("access_token", tokenString)
		c.Next()
	}
}
