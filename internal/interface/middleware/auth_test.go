package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okasatria/go-auth-api/pkg/helpers"
)

func setupProtected(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", BearerAuth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserIDKey),
			"email":   c.GetString(CtxUserEmailKey),
		})
	})
	return r
}

func TestBearerAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	r := setupProtected(jwt)

	access, _, err := jwt.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)
	refresh, _, err := jwt.GenerateRefreshToken("user-1", "a@b.com")
	require.NoError(t, err)

	expiredMgr := helpers.NewJWTManager("test-secret", -time.Minute, time.Hour)
	expired, _, err := expiredMgr.GenerateAccessToken("user-1", "a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid access token", authHeader: "Bearer " + access, wantStatus: http.StatusOK},
		{name: "case-insensitive scheme", authHeader: "bearer " + access, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Token " + access, wantStatus: http.StatusUnauthorized},
		{name: "scheme without token", authHeader: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "malformed token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "refresh token on a protected route", authHeader: "Bearer " + refresh, wantStatus: http.StatusUnauthorized},
		{name: "expired token", authHeader: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
				assert.Contains(t, w.Body.String(), `"email":"a@b.com"`)
			} else {
				assert.JSONEq(t, `{"detail":"Invalid or expired token."}`, w.Body.String())
			}
		})
	}
}
