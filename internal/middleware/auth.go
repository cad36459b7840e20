package middleware

import (
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
)

const userKey = "authUser"

type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate resolves the bearer token to a live user. The token comes
// from "Authorization: Bearer <t>" or, for older clients, the "token" header.
func Authenticate(tokens TokenVerifier, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			Abort(c, apperr.ErrTokenMissing)
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			Abort(c, err)
			return
		}
		// The account may have been deleted after the token was issued
		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			Abort(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.GetHeader("token"))
}

// RequireRole lets the request through only for the listed roles. It must
// run after Authenticate.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !slices.Contains(roles, user.Role) {
			Abort(c, apperr.ErrNotAuthorized)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user Authenticate stored on the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
