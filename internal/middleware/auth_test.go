package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtsvc "mangavault/internal/pkg/jwt"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt := jwtsvc.New("test-secret", time.Hour)

	r := gin.New()
	r.GET("/protected", Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r, jwt
}

func performAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	r, jwt := setupAuthRouter(t)

	token, err := jwt.GenerateToken("user_abc", "mika@example.com")
	require.NoError(t, err)

	w := performAuth(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_abc")
}

func TestAuth_Rejections(t *testing.T) {
	r, _ := setupAuthRouter(t)

	expired := jwtsvc.New("test-secret", -time.Hour)
	expiredToken, err := expired.GenerateToken("user_abc", "mika@example.com")
	require.NoError(t, err)

	otherKey := jwtsvc.New("other-secret", time.Hour)
	forgedToken, err := otherKey.GenerateToken("user_abc", "mika@example.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expiredToken},
		{"wrong signing key", "Bearer " + forgedToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performAuth(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
