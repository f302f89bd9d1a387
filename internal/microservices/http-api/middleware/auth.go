package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/microservices/http-api/service"
	"titlehub/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenValidator parses access tokens.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*service.Claims, error)
}

// UserLookup loads the current state of a token's user.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticate resolves the request identity.
// Requests without an Authorization header continue as anonymous; a header
// that is malformed, expired or names a user that no longer exists is rejected.
func Authenticate(tokens TokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			SetIdentity(c, permission.Anonymous())
			c.Next()
			return
		}

		// format: "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		claims, err := tokens.ValidateToken(ctx, parts[1])
		if err != nil {
			if errors.Is(err, apperr.ErrUnauthenticated) {
				abortUnauthorized(c, "invalid token")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to validate token"})
			return
		}

		// the role in the token may be stale, so the user row is authoritative
		user, err := users.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				abortUnauthorized(c, "user not found")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to resolve user"})
			return
		}

		SetIdentity(c, permission.FromUser(user))
		c.Next()
	}
}

// SetIdentity records the identity handlers act as.
func SetIdentity(c *gin.Context, id permission.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by Authenticate, or the anonymous identity.
func IdentityFrom(c *gin.Context) permission.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(permission.Identity); ok {
			return id
		}
	}
	return permission.Anonymous()
}

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).Authenticated() {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}
		c.Next()
	}
}

// RequireAdmin guards admin-only routes, including reads.
// Anonymous callers get 401, authenticated non-admins 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if !id.Authenticated() {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}
		if !permission.AdminOnly(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "you do not have permission to perform this action",
				Kind:  apperr.KindPermissionDenied.String(),
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: msg,
		Kind:  apperr.KindUnauthenticated.String(),
	})
}
