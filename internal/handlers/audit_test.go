package handlers

import (
	"net/http"
	"testing"

	"feedesk/internal/audit"
	"feedesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditDetailView struct {
	ID     string           `json:"id"`
	Fields []audit.FieldRow `json:"fields"`
}

func TestAuditAPI(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	p := h.seedPayment(t)

	require.Equal(t, http.StatusOK, h.do(t, http.MethodPatch, "/api/payments/"+p.ID, map[string]interface{}{"amount": 150}, adminID).Code)
	require.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/api/student-registration", map[string]interface{}{"name": "Kiran"}, subAdminID).Code)

	t.Run("admin only", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/api/audit", nil, "").Code)
		assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodGet, "/api/audit", nil, subAdminID).Code)
		assert.Equal(t, http.StatusForbidden, h.do(t, http.MethodDelete, "/api/audit/x", nil, accountsID).Code)
	})

	t.Run("list newest first with filter", func(t *testing.T) {
		w := h.do(t, http.MethodGet, "/api/audit", nil, adminID)
		require.Equal(t, http.StatusOK, w.Code)
		env := decode[[]models.AuditLog](t, w)
		assert.Equal(t, "audit fetched successfully", env.Message)
		require.Len(t, env.Data, 2)
		assert.Equal(t, audit.ModuleStudent, env.Data[0].Module)
		assert.Equal(t, audit.ModulePayment, env.Data[1].Module)

		w = h.do(t, http.MethodGet, "/api/audit?q=PAY", nil, adminID)
		filtered := decode[[]models.AuditLog](t, w).Data
		require.Len(t, filtered, 1)
		assert.Equal(t, "150", filtered[0].New()["amount"].String())

		w = h.do(t, http.MethodGet, "/api/audit?limit=1", nil, adminID)
		firstPage := decode[[]models.AuditLog](t, w).Data
		require.Len(t, firstPage, 1)
		assert.Equal(t, audit.ModuleStudent, firstPage[0].Module)

		// the payment entry is on the second unfiltered page
		w = h.do(t, http.MethodGet, "/api/audit?q=payment&limit=1", nil, adminID)
		matched := decode[[]models.AuditLog](t, w).Data
		require.Len(t, matched, 1)
		assert.Equal(t, audit.ModulePayment, matched[0].Module)

		w = h.do(t, http.MethodGet, "/api/audit?q=payment&offset=1", nil, adminID)
		assert.Empty(t, decode[[]models.AuditLog](t, w).Data)

		w = h.do(t, http.MethodGet, "/api/audit?limit=abc", nil, adminID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("show expands fields", func(t *testing.T) {
		id := h.audit.all()[0].ID
		w := h.do(t, http.MethodGet, "/api/audit/"+id, nil, adminID)
		require.Equal(t, http.StatusOK, w.Code)
		detail := decode[auditDetailView](t, w).Data
		assert.Equal(t, id, detail.ID)
		assert.Contains(t, detail.Fields, audit.FieldRow{Field: "amount", Old: "100", New: "150", Changed: true})
		assert.Contains(t, detail.Fields, audit.FieldRow{Field: "status", Old: "PENDING", New: "PENDING", Changed: false})
	})

	t.Run("delete", func(t *testing.T) {
		id := h.audit.all()[0].ID
		w := h.do(t, http.MethodDelete, "/api/audit/"+id, nil, adminID)
		require.Equal(t, http.StatusOK, w.Code)
		env := decode[models.AuditLog](t, w)
		assert.Equal(t, "Audit log deleted successfully", env.Message)
		assert.Equal(t, id, env.Data.ID)
		assert.Len(t, h.audit.all(), 1)

		w = h.do(t, http.MethodDelete, "/api/audit/"+id, nil, adminID)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Audit log not found", decode[interface{}](t, w).Message)
	})
}
