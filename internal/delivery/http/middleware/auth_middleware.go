package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-jobmatch-bot/internal/delivery/http/response"
	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const adminRole = "admin"

// AdminAuth accepts HS256 bearer tokens signed with secret whose role claim is
// "admin". The sub claim becomes the admin id on the context.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.Error(c, http.StatusServiceUnavailable, "Admin API is not configured", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			logger.Log.Debug("Admin token rejected", zap.Error(err))
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}
		if role, _ := claims["role"].(string); role != adminRole {
			response.Error(c, http.StatusForbidden, "Admin role required", nil)
			c.Abort()
			return
		}

		sub, _ := claims.GetSubject()
		c.Set(string(domain.KeyAdminID), sub)
		c.Next()
	}
}
