package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/acara-auth/pkg/helpers"
	"github.com/oksasatya/acara-auth/pkg/response"
)

const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// Auth verifies the access token and sets userID and userRole in the Gin context.
// The token comes from "Authorization: Bearer <token>" or, failing that, the access cookie.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(helpers.AccessCookie)
		}
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token")
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		c.Set(UserIDKey, claims.ID)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
