// Package auth issues and verifies the bearer tokens accepted by the HTTP
// API. Two token kinds exist: service tokens for service-to-service calls,
// which bypass permission checks, and user tokens, which carry a permission
// level checked by the route middleware.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ledger/backend/internal/infrastructure/config"
)

// TokenType distinguishes service tokens from user tokens
type TokenType string

const (
	TokenTypeService TokenType = "service"
	TokenTypeUser    TokenType = "user"
)

// Permission levels carried by user tokens
const (
	PermissionAdmin   = "admin"
	PermissionBilling = "billing"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// Claims are the JWT claims the API accepts
type Claims struct {
	jwt.RegisteredClaims
	TokenType TokenType `json:"type"`
	// Service names the caller on service tokens
	Service string `json:"calling_service,omitempty"`
	// Username and PermissionLevel are set on user tokens
	Username        string `json:"username,omitempty"`
	PermissionLevel string `json:"permission_level,omitempty"`
}

// IsServiceCall reports whether the claims belong to a service token
func (c *Claims) IsServiceCall() bool {
	return c.TokenType == TokenTypeService
}

// CanManageBilling reports whether the caller may hit billing routes.
// Services always may; users need billing or admin permission.
func (c *Claims) CanManageBilling() bool {
	if c.IsServiceCall() {
		return true
	}
	return c.PermissionLevel == PermissionAdmin || c.PermissionLevel == PermissionBilling
}

// IsAdmin reports whether the caller may hit admin routes
func (c *Claims) IsAdmin() bool {
	if c.IsServiceCall() {
		return true
	}
	return c.PermissionLevel == PermissionAdmin
}

// TokenService signs and verifies API tokens
type TokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewTokenService builds a token service from the JWT configuration
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateServiceToken issues a token for a named calling service
func (s *TokenService) GenerateServiceToken(service string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   service,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType: TokenTypeService,
		Service:   service,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// GenerateUserToken issues a token for a user with a permission level
func (s *TokenService) GenerateUserToken(username, permissionLevel string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenType:       TokenTypeUser,
		Username:        username,
		PermissionLevel: permissionLevel,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses and verifies a token string
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TokenType != TokenTypeService && claims.TokenType != TokenTypeUser {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
