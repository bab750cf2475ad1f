package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentApproved, PaymentRejected:
		return true
	}
	return false
}

// methods that must carry a bank/transaction reference number
var referencedMethods = map[string]struct{}{
	"online":      {},
	"neft":        {},
	"cheque":      {},
	"link":        {},
	"cash-swipe":  {},
	"online-cash": {},
}

func MethodNeedsReference(method string) bool {
	_, ok := referencedMethods[strings.ToLower(strings.TrimSpace(method))]
	return ok
}

// NewInvoiceNumber builds an invoice number from the payment date and a random
// suffix, e.g. INV-20261014-1A2B3C4D.
func NewInvoiceNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "INV-" + at.UTC().Format("20060102") + "-" + suffix
}

type Payment struct {
	ID        string   `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID string   `gorm:"type:uuid;not null;index" json:"studentId"`
	Student   *Student `json:"student,omitempty"`

	FeeType       string        `gorm:"size:100;not null" json:"feeType"`
	SubFeeType    *string       `gorm:"size:100" json:"subFeeType"`
	PaymentMethod string        `gorm:"size:50;not null" json:"paymentMethod"`
	Amount        float64       `gorm:"not null" json:"amount"`
	BankDetails   string        `gorm:"type:text" json:"bankDetails"`
	ReferenceNo   string        `gorm:"size:100" json:"referenceNo"`
	InvoiceNumber string        `gorm:"size:50;uniqueIndex" json:"invoiceNumber"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	return nil
}

func (p Payment) AuditSnapshot() Values {
	return Values{
		"id":            StringValue(p.ID),
		"studentId":     StringValue(p.StudentID),
		"feeType":       StringValue(p.FeeType),
		"subFeeType":    OptionalString(p.SubFeeType),
		"paymentMethod": StringValue(p.PaymentMethod),
		"amount":        NumberValue(p.Amount),
		"bankDetails":   StringValue(p.BankDetails),
		"referenceNo":   StringValue(p.ReferenceNo),
		"invoiceNumber": StringValue(p.InvoiceNumber),
		"status":        StringValue(string(p.Status)),
		"createdAt":     TimeValue(p.CreatedAt),
		"updatedAt":     TimeValue(p.UpdatedAt),
	}
}

// PaymentPatch is the mutable subset of a payment. Identity, timestamps and
// the invoice number cannot be changed through it.
type PaymentPatch struct {
	StudentID     *string        `json:"studentId"`
	FeeType       *string        `json:"feeType"`
	SubFeeType    *string        `json:"subFeeType"`
	PaymentMethod *string        `json:"paymentMethod"`
	Amount        *float64       `json:"amount"`
	BankDetails   *string        `json:"bankDetails"`
	ReferenceNo   *string        `json:"referenceNo"`
	Status        *PaymentStatus `json:"status"`
}

func (p PaymentPatch) Apply(dst *Payment) {
	if p.StudentID != nil {
		dst.StudentID = *p.StudentID
	}
	if p.FeeType != nil {
		dst.FeeType = *p.FeeType
	}
	if p.SubFeeType != nil {
		v := *p.SubFeeType
		dst.SubFeeType = &v
	}
	if p.PaymentMethod != nil {
		dst.PaymentMethod = *p.PaymentMethod
	}
	if p.Amount != nil {
		dst.Amount = *p.Amount
	}
	if p.BankDetails != nil {
		dst.BankDetails = *p.BankDetails
	}
	if p.ReferenceNo != nil {
		dst.ReferenceNo = *p.ReferenceNo
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
}
