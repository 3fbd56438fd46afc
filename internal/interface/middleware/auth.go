package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/okasatria/go-auth-api/pkg/helpers"
	"github.com/okasatria/go-auth-api/pkg/response"
)

// Context keys set for authenticated requests.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

const invalidTokenDetail = "Invalid or expired token."

// BearerAuth verifies the Authorization: Bearer <access-token> header
// and injects the token's identity into the Gin context. Verification is
// a pure computation against the signing secret; no store or cache is
// consulted. Missing, malformed, expired or refresh-typed tokens abort
// with 401 and never fall through as an anonymous success.
func BearerAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.AbortWithDetail(c, http.StatusUnauthorized, invalidTokenDetail)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortWithDetail(c, http.StatusUnauthorized, invalidTokenDetail)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
