package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(secret), func(c *gin.Context) {
		session, _ := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"account_id": session.AccountID})
	})
	r.GET("/admin-only", AuthMiddleware(secret), RequireKind(KindAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareHeaders(t *testing.T) {
	router := setupRouter(testSecret)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router := setupRouter(testSecret)

	token, err := GenerateAccessToken(gymSession(), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"account_id":2`)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	router := setupRouter(testSecret)

	refreshToken, err := GenerateRefreshToken(gymSession(), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireKind(t *testing.T) {
	router := setupRouter(testSecret)

	t.Run("gym token cannot reach admin routes", func(t *testing.T) {
		token, err := GenerateAccessToken(gymSession(), testSecret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin token passes", func(t *testing.T) {
		token, err := GenerateAccessToken(Session{AccountID: 1, Username: "admin", Kind: KindAdmin}, testSecret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetAccountID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	t.Run("no session", func(t *testing.T) {
		_, ok := GetAccountID(c)
		assert.False(t, ok)
	})

	t.Run("with session", func(t *testing.T) {
		c.Set("session", Session{AccountID: 7})
		id, ok := GetAccountID(c)
		assert.True(t, ok)
		assert.Equal(t, 7, id)
	})
}
