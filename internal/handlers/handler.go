package handlers

import (
	"strconv"

	"feedesk/internal/apperr"
	"feedesk/internal/audit"
	"feedesk/internal/auth"
	"feedesk/internal/database"
	"feedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Auditing is embedded by every handler that mutates a tracked record.
type Auditing struct {
	Auditor audit.Auditor
	Users   UserFinder
	Mode    audit.DiffMode
	Policy  audit.FailurePolicy
}

// record writes the entry for a committed mutation and returns the warnings
// the response should carry. The mutation is never rolled back.
func (a Auditing) record(c *gin.Context, ev audit.Event) []string {
	ev.Actor = a.currentActor(c)
	ev.Network = audit.NetworkFromRequest(c.Request)
	_, err := a.Auditor.Audit(c.Request.Context(), ev)
	return a.Policy.Warnings(err)
}

// currentActor re-reads the token's user so the entry stores the role held
// right now. An unknown user is recorded as the system.
func (a Auditing) currentActor(c *gin.Context) *auth.Actor {
	tok := middleware.Actor(c)
	if tok == nil || a.Users == nil {
		return nil
	}
	u, err := a.Users.Get(c.Request.Context(), tok.ID)
	if err != nil {
		return nil
	}
	return &auth.Actor{ID: u.ID, Role: u.Role}
}

func listOptions(c *gin.Context) (database.ListOptions, error) {
	var opts database.ListOptions
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, apperr.Validation(name + " must be a non-negative integer")
		}
		*dst = n
	}
	return opts, nil
}

// page applies opts to an in-memory result.
func page[T any](items []T, opts database.ListOptions) []T {
	if opts.Offset >= len(items) {
		return []T{}
	}
	items = items[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}
