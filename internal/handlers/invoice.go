package handlers

import (
	"fmt"
	"net/http"
	"time"

	"feedesk/internal/apperr"
	"feedesk/internal/models"
	"feedesk/internal/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	Payments PaymentStore
}

type invoiceStudent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Course string `json:"course"`
	Branch string `json:"branch"`
}

// Invoice is the printable view of one payment.
type Invoice struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	IssuedAt      time.Time            `json:"issuedAt"`
	PaymentID     string               `json:"paymentId"`
	Student       *invoiceStudent      `json:"student"`
	FeeType       string               `json:"feeType"`
	SubFeeType    *string              `json:"subFeeType"`
	PaymentMethod string               `json:"paymentMethod"`
	ReferenceNo   string               `json:"referenceNo"`
	BankDetails   string               `json:"bankDetails"`
	Amount        float64              `json:"amount"`
	Status        models.PaymentStatus `json:"status"`
}

func NewInvoice(p *models.Payment) Invoice {
	inv := Invoice{
		InvoiceNumber: p.InvoiceNumber,
		IssuedAt:      p.CreatedAt,
		PaymentID:     p.ID,
		FeeType:       p.FeeType,
		SubFeeType:    p.SubFeeType,
		PaymentMethod: p.PaymentMethod,
		ReferenceNo:   p.ReferenceNo,
		BankDetails:   p.BankDetails,
		Amount:        p.Amount,
		Status:        p.Status,
	}
	if s := p.Student; s != nil {
		inv.Student = &invoiceStudent{
			ID:     s.ID,
			Name:   s.Name,
			Email:  s.Email,
			Phone:  s.Phone,
			Course: s.Course,
			Branch: s.Branch,
		}
	}
	return inv
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")
	p, err := h.Payments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperr.From(err, fmt.Sprintf("No invoice found for payment %s", id)))
		return
	}
	response.OK(c, http.StatusOK, NewInvoice(p), "invoice fetched successfully")
}
