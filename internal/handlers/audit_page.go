package handlers

import (
	"net/http"
	"strings"

	"feedesk/internal/audit"
	"feedesk/internal/database"
	"feedesk/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// session key holding the last audit search
const auditSearchKey = "audit_q"

type AuditPage struct {
	Logs AuditStore
}

type auditRow struct {
	Entry    models.AuditLog
	Name     string
	Email    string
	Role     string
	Expanded bool
	Fields   []audit.FieldRow
}

// Show renders the audit table. A q parameter replaces the remembered search
// (an empty q clears it); expand=<id> opens that entry's field comparison.
func (h *AuditPage) Show(c *gin.Context) {
	sess := sessions.Default(c)
	q, given := c.GetQuery("q")
	q = strings.TrimSpace(q)
	if given {
		if q == "" {
			sess.Delete(auditSearchKey)
		} else {
			sess.Set(auditSearchKey, q)
		}
		_ = sess.Save()
	} else if saved, ok := sess.Get(auditSearchKey).(string); ok {
		q = saved
	}

	entries, err := h.Logs.List(c.Request.Context(), database.ListOptions{})
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "failed to load audit logs")
		return
	}

	expand := c.Query("expand")
	filtered := audit.Filter(entries, q)
	rows := make([]auditRow, 0, len(filtered))
	for _, e := range filtered {
		row := auditRow{
			Entry: e,
			Name:  audit.ActorName(e),
			Email: audit.ActorEmail(e),
			Role:  audit.RoleLabel(e),
		}
		if expand != "" && e.ID == expand {
			row.Expanded = true
			row.Fields = audit.Expand(e)
		}
		rows = append(rows, row)
	}

	render(c, http.StatusOK, "audit_log.html", gin.H{
		"Query": q,
		"Rows":  rows,
		"Total": len(entries),
	})
}
