package middleware

import (
	"context"

	"feedesk/internal/models"

	"github.com/gin-gonic/gin"
)

// UserLookup loads the user behind a token.
type UserLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

const currentUserKey = "CurrentUser"

// InjectUser loads the authenticated user for page templates. It must run
// after Authenticate or RequirePage; lookup failures leave the user unset.
func InjectUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a := Actor(c); a != nil {
			if u, err := users.Get(c.Request.Context(), a.ID); err == nil {
				c.Set(currentUserKey, u)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by InjectUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
