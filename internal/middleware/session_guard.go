package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sikhmentors/directory-api/internal/models"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/jwt"
)

// AdminSessionContextKey stores the authenticated admin session in request context.
const AdminSessionContextKey = "admin_session"

const bearerScheme = "bearer"

var (
	ErrAdminSessionNotFound = errors.New("admin session not found in context")
	ErrInvalidAdminSession  = errors.New("invalid admin session type")
)

// SessionGuard verifies the bearer token on every request of the group it is
// attached to. A missing token is rejected with 401, anything that fails
// verification with 403.
func SessionGuard(tokenManager *jwt.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			status := http.StatusForbidden
			if errors.Is(err, apperrors.ErrMissingToken) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": rejectMessage(status)})
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": rejectMessage(http.StatusForbidden)})
			return
		}

		session := &models.AdminSession{
			AdminID: claims.AdminID,
			Email:   claims.Email,
		}
		if claims.IssuedAt != nil {
			session.IssuedAt = claims.IssuedAt.Unix()
		}
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.Unix()
		}

		c.Set(AdminSessionContextKey, session)
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header value.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apperrors.ErrMissingToken
	}

	scheme, value, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return "", fmt.Errorf("%w: unsupported authorization scheme %q", apperrors.ErrInvalidToken, scheme)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperrors.ErrMissingToken
	}
	return value, nil
}

func rejectMessage(status int) string {
	if status == http.StatusUnauthorized {
		return "Authorization token required"
	}
	return "Invalid or expired token"
}

// GetAdminSession returns the session stored by SessionGuard.
func GetAdminSession(c *gin.Context) (*models.AdminSession, error) {
	val, exists := c.Get(AdminSessionContextKey)
	if !exists {
		return nil, ErrAdminSessionNotFound
	}

	session, ok := val.(*models.AdminSession)
	if !ok {
		return nil, ErrInvalidAdminSession
	}
	return session, nil
}
