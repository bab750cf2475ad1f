package auth

import (
	"net/http"
	"strings"

	"feedesk/internal/apperr"
	"feedesk/internal/models"
)

// CookieName holds the session token.
const CookieName = "token"

// Actor is the authenticated caller.
type Actor struct {
	ID   string
	Role models.UserRole
}

// Gate authenticates requests and authorizes actors.
type Gate struct {
	tokens *TokenService
}

func NewGate(tokens *TokenService) *Gate {
	return &Gate{tokens: tokens}
}

// Authenticate reads the token cookie, falling back to a bearer
// Authorization header. Missing, invalid and expired tokens all yield
// Unauthenticated.
func (g *Gate) Authenticate(r *http.Request) (*Actor, error) {
	raw := tokenFromRequest(r)
	if raw == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}
	claims, err := g.tokens.Parse(raw)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid or expired token")
	}
	return &Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// Authorize fails with Forbidden unless actor's role grants c.
func (g *Gate) Authorize(actor *Actor, c Capability) error {
	if actor == nil {
		return apperr.Unauthenticated("Not authenticated")
	}
	if !Grants(actor.Role, c) {
		return apperr.Forbidden("Access denied")
	}
	return nil
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
