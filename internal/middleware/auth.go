package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

type AuthClaims struct {
	UserId int    `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth validates the Bearer token and puts userId and role into the
// request context.
func RequireAuth() gin.HandlerFunc {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Missing or malformed authorization header", nil, http.StatusUnauthorized))
			return
		}

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid or expired token", nil, http.StatusUnauthorized))
			return
		}

		c.Set("userId", claims.UserId)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAdmin gates admin routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("Admin access required", nil, http.StatusForbidden))
			return
		}
		c.Next()
	}
}
