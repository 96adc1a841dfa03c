package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ledger/backend/internal/infrastructure/auth"
	"github.com/ledger/backend/internal/interfaces/http/dto"
)

const (
	bearerPrefix = "Bearer "
	claimsKey    = "auth_claims"
)

// Auth validates the bearer token and stores its claims on the context.
// Both service and user tokens pass; route groups layer permission checks
// on top.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Authorization header is missing or invalid")
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token has expired"
			}
			abortUnauthorized(c, message)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireBilling rejects callers without billing or admin permission
func RequireBilling() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.CanManageBilling() {
			abortForbidden(c, "Billing or admin access required")
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without admin permission
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin() {
			abortForbidden(c, "Admin access required")
			return
		}
		c.Next()
	}
}

// GetClaims returns the validated claims for this request, nil when the
// route skipped authentication
func GetClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, message, GetRequestID(c)))
}
