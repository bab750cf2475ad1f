package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"feedesk/internal/apperr"
	"feedesk/internal/audit"
	"feedesk/internal/middleware"
	"feedesk/internal/models"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// UserHandler manages employee accounts. Password hashes never appear in
// responses or audit entries.
type UserHandler struct {
	Auditing
	Accounts   UserStore
	BcryptCost int
}

func (h *UserHandler) hash(password string) (string, error) {
	cost := h.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", apperr.Server(err)
	}
	return string(b), nil
}

func (h *UserHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	users, err := h.Accounts.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, users, "users fetched successfully")
}

func (h *UserHandler) load(c *gin.Context) (*models.User, bool) {
	id := c.Param("id")
	u, err := h.Accounts.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperr.From(err, fmt.Sprintf("No user found with id: %s", id)))
		return nil, false
	}
	return u, true
}

func (h *UserHandler) Get(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}
	response.OK(c, http.StatusOK, u, "user fetched successfully")
}

type createUserRequest struct {
	EmployeeID string          `json:"employeeId"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Branch     string          `json:"branch"`
	Role       models.UserRole `json:"role"`
	LoginType  string          `json:"loginType"`
	Password   string          `json:"password"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if len(req.Password) < minPasswordLen {
		response.Error(c, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLen)))
		return
	}

	u := &models.User{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		Branch:     strings.TrimSpace(req.Branch),
		Role:       req.Role,
		LoginType:  strings.TrimSpace(req.LoginType),
	}
	if err := validateUser(u); err != nil {
		response.Error(c, err)
		return
	}
	hash, err := h.hash(req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	u.PasswordHash = hash

	if err := h.Accounts.Create(c.Request.Context(), u); err != nil {
		response.Error(c, err)
		return
	}

	warnings := h.record(c, audit.CreateEvent(audit.ModuleUser, u.ID, u.AuditSnapshot(), audit.UserFields))
	response.OK(c, http.StatusCreated, u, "user created successfully", warnings...)
}

func (h *UserHandler) Update(c *gin.Context) {
	var patch models.UserPatch
	if err := bindJSON(c, &patch); err != nil {
		response.Error(c, err)
		return
	}
	u, ok := h.load(c)
	if !ok {
		return
	}

	before := u.AuditSnapshot()
	patch.Apply(u)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := validateUser(u); err != nil {
		response.Error(c, err)
		return
	}
	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLen {
			response.Error(c, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLen)))
			return
		}
		hash, err := h.hash(*patch.Password)
		if err != nil {
			response.Error(c, err)
			return
		}
		u.PasswordHash = hash
	}

	if err := h.Accounts.Update(c.Request.Context(), u); err != nil {
		response.Error(c, apperr.From(err, "user was deleted"))
		return
	}

	ev := audit.UpdateEvent(audit.ModuleUser, u.ID, before, u.AuditSnapshot(), audit.UserFields, h.Mode)
	warnings := h.record(c, ev)
	response.OK(c, http.StatusOK, u, "user updated successfully", warnings...)
}

func (h *UserHandler) Delete(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}
	if a := middleware.Actor(c); a != nil && a.ID == u.ID {
		response.Error(c, apperr.Validation("you cannot delete your own account"))
		return
	}
	if err := h.Accounts.Delete(c.Request.Context(), u); err != nil {
		response.Error(c, apperr.From(err, "user already deleted"))
		return
	}

	warnings := h.record(c, audit.DeleteEvent(audit.ModuleUser, u.ID, u.AuditSnapshot()))
	response.OK(c, http.StatusOK, u, "user deleted successfully", warnings...)
}

func validateUser(u *models.User) error {
	switch {
	case u.Name == "":
		return apperr.Validation("name is required")
	case u.Email == "" || !strings.Contains(u.Email, "@"):
		return apperr.Validation("a valid email is required")
	case !u.Role.Valid():
		return apperr.Validation(fmt.Sprintf("invalid role %q", u.Role))
	}
	return nil
}
