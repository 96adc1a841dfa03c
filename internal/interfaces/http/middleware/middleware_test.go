package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger/backend/internal/infrastructure/auth"
	"github.com/ledger/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		assert.NotEmpty(t, GetRequestID(c))
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		assert.Equal(t, "req-123", GetRequestID(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func newTokenService() *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret:                "middleware-test-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "ledger-test",
	})
}

func authEngine(tokens *auth.TokenService, extra ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(Auth(tokens))
	engine.Use(extra...)
	engine.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuth_RejectsMissingAndMalformed(t *testing.T) {
	engine := authEngine(newTokenService())

	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "garbage").Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_AcceptsValidToken(t *testing.T) {
	tokens := newTokenService()
	engine := gin.New()
	engine.Use(Auth(tokens))
	engine.GET("/", func(c *gin.Context) {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, "ops", claims.Username)
		c.Status(http.StatusOK)
	})

	token, err := tokens.GenerateUserToken("ops", "billing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(engine, token).Code)
}

func TestRequirePermissions(t *testing.T) {
	tokens := newTokenService()
	billingToken, err := tokens.GenerateUserToken("ops", "billing")
	require.NoError(t, err)
	adminToken, err := tokens.GenerateUserToken("root", "admin")
	require.NoError(t, err)
	viewerToken, err := tokens.GenerateUserToken("guest", "viewer")
	require.NoError(t, err)
	serviceToken, err := tokens.GenerateServiceToken("worker")
	require.NoError(t, err)

	billing := authEngine(tokens, RequireBilling())
	assert.Equal(t, http.StatusOK, doRequest(billing, billingToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(billing, adminToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(billing, serviceToken).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(billing, viewerToken).Code)

	admin := authEngine(tokens, RequireAdmin())
	assert.Equal(t, http.StatusForbidden, doRequest(admin, billingToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(admin, adminToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(admin, serviceToken).Code)
}

func TestCORS_Wildcard(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"*"}
	engine := gin.New()
	engine.Use(CORS(cfg))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Whitelist(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://portal.example.com"}
	engine := gin.New()
	engine.Use(CORS(cfg))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "https://portal.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS(DefaultCORSConfig()))
	engine.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
