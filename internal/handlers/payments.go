package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"feedesk/internal/apperr"
	"feedesk/internal/audit"
	"feedesk/internal/models"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Auditing
	Payments PaymentStore
	Students StudentStore
	Now      func() time.Time
}

func (h *PaymentHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *PaymentHandler) List(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payments, err := h.Payments.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, payments, "payments fetched successfully")
}

func (h *PaymentHandler) load(c *gin.Context) (*models.Payment, bool) {
	id := c.Param("id")
	p, err := h.Payments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperr.From(err, fmt.Sprintf("No payment found with this id %s", id)))
		return nil, false
	}
	return p, true
}

func (h *PaymentHandler) Get(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	response.OK(c, http.StatusOK, p, "payment fetched successfully")
}

type createPaymentRequest struct {
	StudentID     string               `json:"studentId"`
	FeeType       string               `json:"feeType"`
	SubFeeType    *string              `json:"subFeeType"`
	PaymentMethod string               `json:"paymentMethod"`
	Amount        float64              `json:"amount"`
	BankDetails   string               `json:"bankDetails"`
	ReferenceNo   string               `json:"referenceNo"`
	Status        models.PaymentStatus `json:"status"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req createPaymentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	p := &models.Payment{
		StudentID:     strings.TrimSpace(req.StudentID),
		FeeType:       strings.TrimSpace(req.FeeType),
		SubFeeType:    req.SubFeeType,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Amount:        req.Amount,
		BankDetails:   req.BankDetails,
		ReferenceNo:   strings.TrimSpace(req.ReferenceNo),
		Status:        req.Status,
		InvoiceNumber: models.NewInvoiceNumber(h.now()),
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if err := validatePayment(p); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.studentExists(c, p.StudentID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.Payments.Create(c.Request.Context(), p); err != nil {
		response.Error(c, err)
		return
	}

	warnings := h.record(c, audit.CreateEvent(audit.ModulePayment, p.ID, p.AuditSnapshot(), audit.PaymentFields))
	response.OK(c, http.StatusCreated, p, "payment created successfully", warnings...)
}

// Update applies a partial update. Body fields for id, timestamps and the
// invoice number are ignored.
func (h *PaymentHandler) Update(c *gin.Context) {
	var patch models.PaymentPatch
	if err := bindJSON(c, &patch); err != nil {
		response.Error(c, err)
		return
	}
	p, ok := h.load(c)
	if !ok {
		return
	}

	before := p.AuditSnapshot()
	patch.Apply(p)
	if err := validatePayment(p); err != nil {
		response.Error(c, err)
		return
	}
	if patch.StudentID != nil {
		if err := h.studentExists(c, p.StudentID); err != nil {
			response.Error(c, err)
			return
		}
	}
	p.Student = nil

	if err := h.Payments.Update(c.Request.Context(), p); err != nil {
		response.Error(c, apperr.From(err, "payment was deleted"))
		return
	}

	ev := audit.UpdateEvent(audit.ModulePayment, p.ID, before, p.AuditSnapshot(), audit.PaymentFields, h.Mode)
	warnings := h.record(c, ev)
	response.OK(c, http.StatusOK, p, "payment updated successfully", warnings...)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.Payments.Delete(c.Request.Context(), p); err != nil {
		response.Error(c, apperr.From(err, "payment already deleted"))
		return
	}
	p.Student = nil

	warnings := h.record(c, audit.DeleteEvent(audit.ModulePayment, p.ID, p.AuditSnapshot()))
	response.OK(c, http.StatusOK, p, "payment deleted successfully", warnings...)
}

func (h *PaymentHandler) studentExists(c *gin.Context, id string) error {
	if _, err := h.Students.Get(c.Request.Context(), id); err != nil {
		return apperr.From(err, fmt.Sprintf("No student found with this id %s", id))
	}
	return nil
}

func validatePayment(p *models.Payment) error {
	switch {
	case p.StudentID == "":
		return apperr.Validation("studentId is required")
	case p.FeeType == "":
		return apperr.Validation("feeType is required")
	case p.PaymentMethod == "":
		return apperr.Validation("paymentMethod is required")
	case p.Amount <= 0:
		return apperr.Validation("amount must be greater than zero")
	case !p.Status.Valid():
		return apperr.Validation(fmt.Sprintf("invalid status %q", p.Status))
	case models.MethodNeedsReference(p.PaymentMethod) && strings.TrimSpace(p.ReferenceNo) == "":
		return apperr.Validation(fmt.Sprintf("referenceNo is required for %s payments", p.PaymentMethod))
	}
	return nil
}
