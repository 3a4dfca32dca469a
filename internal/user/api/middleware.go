package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ridloal/retail-pos-backend/internal/user/domain"
)

const ContextClaimsKey = "authClaims"

// AuthRequired memverifikasi bearer token dan melampirkan klaim identitas
// ke context request untuk handler di belakangnya.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		identity := domain.TokenClaims{}
		if v, ok := claims["id"].(string); ok {
			identity.UserID = v
		}
		if v, ok := claims["username"].(string); ok {
			identity.Username = v
		}
		if v, ok := claims["name"].(string); ok {
			identity.Name = v
		}
		c.Set(ContextClaimsKey, identity)
		c.Next()
	}
}
