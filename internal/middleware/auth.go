package middleware

import (
	"net/http"
	"strings"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/jwt"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// JWTAuth requires a valid bearer token and stores user_id and role in the
// context. Browsers cannot set headers on a WebSocket handshake, so an
// access_token query parameter is accepted as well.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("access_token")
		if tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
				c.Abort()
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
				c.Abort()
				return
			}
			tokenStr = parts[1]
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(tokenStr))
		if err != nil {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalJWTAuth sets user_id and role when a valid bearer token is present
// and lets the request through either way.
func OptionalJWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1])); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}
