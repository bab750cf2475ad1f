package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedesk/internal/audit"
	"feedesk/internal/auth"
	"feedesk/internal/logger"
	"feedesk/internal/middleware"
	"feedesk/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	adminID    = "00000000-0000-0000-0000-00000000000a"
	subAdminID = "00000000-0000-0000-0000-00000000000b"
	accountsID = "00000000-0000-0000-0000-00000000000c"
	studentID  = "00000000-0000-0000-0000-0000000000s1"
	password   = "s3cret-pass"
)

type harness struct {
	router   *gin.Engine
	tokens   *auth.TokenService
	users    *memUsers
	students *memStudents
	payments *memPayments
	logins   *memLogins
	audit    *memAudit
	logs     *bytes.Buffer
}

type harnessOpts struct {
	policy audit.FailurePolicy
	mode   audit.DiffMode
}

func newHarness(t *testing.T, opts harnessOpts) *harness {
	t.Helper()
	if opts.policy == "" {
		opts.policy = audit.PolicyIgnore
	}
	if opts.mode == "" {
		opts.mode = audit.DiffAllowlist
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	accounts := newMemUsers(
		models.User{ID: adminID, Name: "Admin", Email: "admin@feedesk.local", Role: models.RoleAdmin, PasswordHash: string(hash)},
		models.User{ID: subAdminID, Name: "Sub Admin", Email: "sub@feedesk.local", Role: models.RoleSubAdmin, PasswordHash: string(hash)},
		models.User{ID: accountsID, Name: "Accounts", Email: "acc@feedesk.local", Role: models.RoleAccounts, PasswordHash: string(hash)},
	)
	registered := newMemStudents(models.Student{ID: studentID, Name: "Asha", Email: "asha@example.com", Course: "BCA"})

	h := &harness{
		tokens:   auth.NewTokenService("handler-secret", time.Hour),
		users:    accounts,
		students: registered,
		payments: newMemPayments(registered),
		logins:   &memLogins{},
		audit:    &memAudit{},
		logs:     &bytes.Buffer{},
	}

	log := logger.NewWithOutput("info", "json", h.logs)
	auditing := Auditing{
		Auditor: audit.NewRecorder(h.audit, log),
		Users:   h.users,
		Mode:    opts.mode,
		Policy:  opts.policy,
	}
	gate := auth.NewGate(h.tokens)
	can := func(c auth.Capability) gin.HandlerFunc { return middleware.RequireCapability(gate, c) }

	payments := &PaymentHandler{Auditing: auditing, Payments: h.payments, Students: h.students}
	students := &StudentHandler{Auditing: auditing, Students: h.students}
	users := &UserHandler{Auditing: auditing, Accounts: h.users, BcryptCost: bcrypt.MinCost}
	authH := &AuthHandler{Accounts: h.users, Logins: h.logins, Tokens: h.tokens, Log: log}
	loginRecords := &LoginRecordHandler{Users: h.users, Logins: h.logins}
	invoices := &InvoiceHandler{Payments: h.payments}
	audits := &AuditHandler{Logs: h.audit}

	r := gin.New()
	r.POST("/api/auth/login", authH.Login)
	r.POST("/api/auth/logout", authH.Logout)

	api := r.Group("/api", middleware.Authenticate(gate))
	api.GET("/payments", can(auth.CapPaymentRead), payments.List)
	api.GET("/payments/:id", can(auth.CapPaymentRead), payments.Get)
	api.POST("/payments", can(auth.CapPaymentWrite), payments.Create)
	api.PATCH("/payments/:id", can(auth.CapPaymentWrite), payments.Update)
	api.DELETE("/payments/:id", can(auth.CapPaymentDelete), payments.Delete)
	api.POST("/student-registration", can(auth.CapStudentWrite), students.Create)
	api.PUT("/student-registration/:id", can(auth.CapStudentWrite), students.Update)
	api.DELETE("/student-registration/:id", can(auth.CapStudentDelete), students.Delete)
	api.GET("/users", can(auth.CapUserManage), users.List)
	api.POST("/users", can(auth.CapUserManage), users.Create)
	api.PUT("/users/:id", can(auth.CapUserManage), users.Update)
	api.DELETE("/users/:id", can(auth.CapUserManage), users.Delete)
	api.POST("/employee-logins", can(auth.CapLoginRecords), loginRecords.Create)
	api.GET("/employee-logins", can(auth.CapLoginRecords), loginRecords.List)
	api.GET("/invoice/:id", can(auth.CapInvoiceRead), invoices.Get)
	api.GET("/audit", can(auth.CapAuditRead), audits.List)
	api.GET("/audit/:id", can(auth.CapAuditRead), audits.Get)
	api.DELETE("/audit/:id", can(auth.CapAuditDelete), audits.Delete)
	h.router = r
	return h
}

type envelope[T any] struct {
	Status     string   `json:"status"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Data       T        `json:"data"`
	Warnings   []string `json:"warnings"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// do sends a JSON request as userID; an empty userID sends no token.
func (h *harness) do(t *testing.T, method, path string, body interface{}, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("User-Agent", "handler-test")
	if userID != "" {
		role := models.RoleAdmin
		if u, ok := h.users.rows[userID]; ok {
			role = u.Role
		}
		tok, err := h.tokens.Issue(userID, role)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tok})
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) seedPayment(t *testing.T) models.Payment {
	t.Helper()
	p := models.Payment{
		StudentID:     studentID,
		FeeType:       "tuition",
		PaymentMethod: "cash",
		Amount:        100,
		InvoiceNumber: "INV-20261014-AAAA0001",
		Status:        models.PaymentPending,
	}
	require.NoError(t, h.payments.Create(context.Background(), &p))
	return p
}
