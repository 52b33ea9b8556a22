package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"servicehub/internal/pkg/jwt"
	"servicehub/internal/pkg/response"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// UserChecker confirms that a token subject is still a known user.
type UserChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// JWTAuth rejects requests without a valid bearer token for an existing user
// and stores the caller's id and role in the gin context.
func JWTAuth(jwtService *jwt.Service, users UserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, "Access token required")
			return
		}

		tokenStr, ok := BearerToken(h)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		exists, err := users.ExistsByID(c.Request.Context(), claims.UserID)
		if err != nil {
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// UserID returns the authenticated caller set by JWTAuth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}
