package auth

import (
	"strings"

	"feedesk/internal/models"
)

// Capability names one guarded operation.
type Capability string

const (
	CapAuditRead     Capability = "audit:read"
	CapAuditDelete   Capability = "audit:delete"
	CapPaymentRead   Capability = "payment:read"
	CapPaymentWrite  Capability = "payment:write"
	CapPaymentDelete Capability = "payment:delete"
	CapStudentRead   Capability = "student:read"
	CapStudentWrite  Capability = "student:write"
	CapStudentDelete Capability = "student:delete"
	CapInvoiceRead   Capability = "invoice:read"
	CapUserManage    Capability = "user:manage"
	CapLoginRecords  Capability = "login:records"
	capAll           Capability = "*"
)

var grants = map[models.UserRole][]Capability{
	models.RoleAdmin: {capAll},
	models.RoleSubAdmin: {
		CapPaymentRead, CapPaymentWrite,
		CapStudentRead, CapStudentWrite,
		CapInvoiceRead,
	},
	models.RoleAccounts: {
		CapPaymentRead, CapInvoiceRead,
	},
}

// Grants reports whether role holds capability c.
func Grants(role models.UserRole, c Capability) bool {
	for _, g := range grants[role] {
		if g == capAll || g == c {
			return true
		}
	}
	return false
}

// pages each role may open; Admin may open everything
var roleAccess = map[models.UserRole][]string{
	models.RoleAdmin: {"*"},
	models.RoleSubAdmin: {
		"/student-registration",
		"/student-registration-list",
		"/make-payment",
		"/transactions",
		"/invoice",
	},
	models.RoleAccounts: {"/dashboard", "/transactions", "/invoice"},
}

// CanAccessPage matches path against the role's page prefixes.
func CanAccessPage(role models.UserRole, path string) bool {
	for _, p := range roleAccess[role] {
		if p == "*" || path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
