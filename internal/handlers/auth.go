package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"feedesk/internal/apperr"
	"feedesk/internal/audit"
	"feedesk/internal/auth"
	"feedesk/internal/models"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	Accounts     UserStore
	Logins       LoginStore
	Tokens       *auth.TokenService
	CookieSecure bool
	Log          logrus.FieldLogger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

const invalidCredentials = "Invalid email or password"

// Login checks the password and applies the lockout rules. Every failure
// counts toward the lock; a success resets the counter.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		response.Error(c, apperr.Validation("email and password are required"))
		return
	}

	ctx := c.Request.Context()
	u, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if ae := apperr.From(err, invalidCredentials); ae.Kind == apperr.KindNotFound {
			response.Error(c, apperr.Unauthenticated(invalidCredentials))
			return
		}
		response.Error(c, err)
		return
	}
	if u.IsLocked {
		response.Error(c, apperr.Forbidden("Account is locked"))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		u.RegisterFailedLogin()
		if err := h.Accounts.SaveLoginState(ctx, u); err != nil {
			response.Error(c, err)
			return
		}
		if u.IsLocked {
			response.Error(c, apperr.Forbidden("Too many failed attempts. Account has been locked."))
			return
		}
		response.Error(c, apperr.Unauthenticated(fmt.Sprintf("%s. %d attempts left", invalidCredentials, u.AttemptsLeft())))
		return
	}

	if u.FailedAttempts > 0 {
		u.ResetLogin()
		if err := h.Accounts.SaveLoginState(ctx, u); err != nil {
			response.Error(c, err)
			return
		}
	}

	token, err := h.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		response.Error(c, apperr.Server(err))
		return
	}

	network := audit.NetworkFromRequest(c.Request)
	rec := &models.EmployeeLoginDetail{UserID: u.ID, IPAddress: network.IP, UserAgent: network.UserAgent}
	if err := h.Logins.Create(ctx, rec); err != nil {
		h.Log.WithError(err).WithField("user_id", u.ID).Warn("login record not stored")
	}

	h.setCookie(c, token, int(h.Tokens.TTL().Seconds()))
	response.OK(c, http.StatusOK, loginResponse{Token: token, User: u}, "login successful")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.OK(c, http.StatusOK, nil, "logout successful")
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.CookieSecure, true)
}
