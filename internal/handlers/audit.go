package handlers

import (
	"net/http"

	"feedesk/internal/apperr"
	"feedesk/internal/audit"
	"feedesk/internal/database"
	"feedesk/internal/models"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
)

// AuditHandler serves the audit trail API. Routes are Admin only.
type AuditHandler struct {
	Logs AuditStore
}

// List returns entries newest first. q narrows the result by module,
// action, role or actor id; limit and offset page the filtered result.
func (h *AuditHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	q := c.Query("q")
	if q == "" {
		entries, err := h.Logs.List(c.Request.Context(), opts)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, entries, "audit fetched successfully")
		return
	}

	entries, err := h.Logs.List(c.Request.Context(), database.ListOptions{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, page(audit.Filter(entries, q), opts), "audit fetched successfully")
}

type auditDetail struct {
	models.AuditLog
	Fields []audit.FieldRow `json:"fields"`
}

func (h *AuditHandler) Get(c *gin.Context) {
	e, err := h.Logs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperr.From(err, "Audit log not found"))
		return
	}
	response.OK(c, http.StatusOK, auditDetail{AuditLog: *e, Fields: audit.Expand(*e)}, "audit log fetched successfully")
}

func (h *AuditHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, apperr.Validation("Audit Log ID is required"))
		return
	}
	deleted, err := h.Logs.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperr.From(err, "Audit log not found"))
		return
	}
	response.OK(c, http.StatusOK, deleted, "Audit log deleted successfully")
}
