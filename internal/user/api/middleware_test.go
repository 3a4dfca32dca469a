package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/retail-pos-backend/internal/user/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
		identity := c.MustGet(ContextClaimsKey).(domain.TokenClaims)
		c.JSON(http.StatusOK, gin.H{"username": identity.Username})
	})
	return router
}

func TestAuthRequired(t *testing.T) {
	router := newProtectedRouter()

	doRequest := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Missing token is rejected", func(t *testing.T) {
		rec := doRequest("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Access denied. No token provided.")
	})

	t.Run("Valid token passes and exposes claims", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"id":       "user-1",
			"username": "budi",
			"name":     "Budi Santoso",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		rec := doRequest("Bearer " + token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"budi"`)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"id":  "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec := doRequest("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"id":  "user-1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})

		rec := doRequest("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
	})
}
