package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"feedesk/internal/apperr"
	"feedesk/internal/audit"
	"feedesk/internal/models"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
)

type LoginRecordHandler struct {
	Users  UserFinder
	Logins LoginStore
}

type loginRecordRequest struct {
	UserID string `json:"userId"`
}

// Create stores a login record for an existing employee from an admin
// request.
func (h *LoginRecordHandler) Create(c *gin.Context) {
	var req loginRecordRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		response.Error(c, apperr.Validation("userId is required"))
		return
	}

	ctx := c.Request.Context()
	u, err := h.Users.Get(ctx, req.UserID)
	if err != nil {
		response.Error(c, apperr.From(err, fmt.Sprintf("No user found with id: %s", req.UserID)))
		return
	}

	network := audit.NetworkFromRequest(c.Request)
	rec := &models.EmployeeLoginDetail{UserID: u.ID, IPAddress: network.IP, UserAgent: network.UserAgent}
	if err := h.Logins.Create(ctx, rec); err != nil {
		response.Error(c, err)
		return
	}
	rec.User = &models.LoginActor{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		EmployeeID: u.EmployeeID,
		LoginType:  u.LoginType,
		Phone:      u.Phone,
		Branch:     u.Branch,
		Role:       u.Role,
	}
	response.OK(c, http.StatusCreated, rec, "Login record added successfully")
}

func (h *LoginRecordHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.Logins.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, records, "Login records fetched successfully")
}
