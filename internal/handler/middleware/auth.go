package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fiksit-api/internal/domain/user"
	"fiksit-api/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxActorKey = "actor"

type AuthMiddleware struct {
	tokens *jwt.Service
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		role := user.Role(claims.Role)
		if !role.IsValid() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxActorKey, user.Actor{ID: claims.UserID, Role: role})
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.UserID.String(),
			"role":    claims.Role,
		})
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			// Should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		c.Abort()
	}
}

func GetActor(c *gin.Context) (user.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return user.Actor{}, false
	}
	actor, ok := v.(user.Actor)
	return actor, ok
}
