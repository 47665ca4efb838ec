package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lbs-school/receipts-api/internal/presentation/http/dto/response"
	"github.com/lbs-school/receipts-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. Validated
// requests carry user_id and user_email in the Gin context; handlers read
// the owner identity from there and pass it down explicitly.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}
