package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"servicehub/internal/pkg/jwt"
)

type knownUsers struct {
	ids map[int64]bool
	err error
}

func (k knownUsers) ExistsByID(_ context.Context, id int64) (bool, error) {
	return k.ids[id], k.err
}

func newProtectedRouter(t *testing.T, jwtService *jwt.Service) *gin.Engine {
	t.Helper()
	return newProtectedRouterWith(t, jwtService, knownUsers{ids: map[int64]bool{42: true}})
}

func newProtectedRouterWith(t *testing.T, jwtService *jwt.Service, users UserChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(JWTAuth(jwtService, users))
	router.GET("/protected", func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserID(c),
			"role":    role,
		})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", 1*time.Hour)
	validToken, _ := jwtService.GenerateToken(42, "CUSTOMER")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	newProtectedRouter(t, jwtService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "CUSTOMER")
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := jwt.New("secret", 1*time.Hour)
	foreign, _ := jwt.New("wrong-secret", time.Hour).GenerateToken(42, "CUSTOMER")

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{name: "missing header", header: "", message: "Access token required"},
		{name: "basic scheme", header: "Basic dGVzdA==", message: "Invalid authorization header"},
		{name: "empty bearer", header: "Bearer   ", message: "Invalid authorization header"},
		{name: "garbage token", header: "Bearer invalid-jwt-here", message: "Invalid or expired token"},
		{name: "foreign signature", header: "Bearer " + foreign, message: "Invalid or expired token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			newProtectedRouter(t, jwtService).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"`+tc.message+`"}`, w.Body.String())
		})
	}
}

func TestJWTAuth_UserLookup(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	deleted, _ := jwtService.GenerateToken(7, "CUSTOMER")
	known, _ := jwtService.GenerateToken(42, "CUSTOMER")

	t.Run("deleted user", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+deleted)
		newProtectedRouter(t, jwtService).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		users := knownUsers{ids: map[int64]bool{42: true}, err: errors.New("db down")}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+known)
		newProtectedRouterWith(t, jwtService, users).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}
