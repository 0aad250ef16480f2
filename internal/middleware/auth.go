package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/types"
)

// Context keys set by the auth middleware.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "No token, authorization denied")
			return
		}
		authenticate(c, validator, authHeader)
	}
}

// OptionalAuth decodes a bearer token when present. Requests without one pass
// through anonymously; a present but invalid token is still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		authenticate(c, validator, authHeader)
	}
}

func authenticate(c *gin.Context, validator TokenValidator, authHeader string) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		abortUnauthorized(c, "Invalid authorization header format")
		return
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		abortUnauthorized(c, "Token is not valid")
		return
	}

	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, claims.UserID)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Message: message})
}

// Claims returns the verified token claims, if the request carried any.
func Claims(c *gin.Context) (*types.TokenClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*types.TokenClaims)
	return claims, ok && claims != nil
}

// UserID returns the authenticated caller's id.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	claims, ok := Claims(c)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
