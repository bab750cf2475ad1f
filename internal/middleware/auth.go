package middleware

import (
	"net/http"

	"feedesk/internal/auth"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Actor returns the caller stored by Authenticate, or nil.
func Actor(c *gin.Context) *auth.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(*auth.Actor); ok {
			return a
		}
	}
	return nil
}

// Authenticate rejects API requests without a valid token.
func Authenticate(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := gate.Authenticate(c.Request)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireCapability must run after Authenticate.
func RequireCapability(gate *auth.Gate, capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(Actor(c), capability); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// RequirePage guards server-rendered pages with the role page table.
func RequirePage(gate *auth.Gate, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := gate.Authenticate(c.Request)
		if err != nil {
			c.String(http.StatusUnauthorized, "not authenticated")
			c.Abort()
			return
		}
		if !auth.CanAccessPage(actor.Role, page) {
			c.String(http.StatusForbidden, "access denied")
			c.Abort()
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}
