package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shopweb/shopweb-api/internal/models"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyRole   = "role"
)

// RequireAuth validates the Bearer token and stores the caller's user
// id and role in the request context. Tokens are HMAC-signed; issuance
// happens elsewhere.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is missing"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		userIDClaim, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		role := models.RoleCustomer
		if roleClaim, ok := claims["role"].(string); ok && models.Role(roleClaim).Valid() {
			role = models.Role(roleClaim)
		}

		c.Set(ctxKeyUserID, int64(userIDClaim))
		c.Set(ctxKeyRole, role)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the caller's role is elevated.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := CurrentUser(c)
		if !ok || !role.Elevated() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller's id and role.
func CurrentUser(c *gin.Context) (int64, models.Role, bool) {
	userID, ok := c.Get(ctxKeyUserID)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Get(ctxKeyRole)
	if !ok {
		return 0, "", false
	}
	return userID.(int64), role.(models.Role), true
}

// SetCurrentUser injects an authenticated caller into the context.
// Test helper for handler tests that bypass RequireAuth.
func SetCurrentUser(c *gin.Context, userID int64, role models.Role) {
	c.Set(ctxKeyUserID, userID)
	c.Set(ctxKeyRole, role)
}
