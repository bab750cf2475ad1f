package server

import (
	"net/http"

	"feedesk/internal/audit"
	"feedesk/internal/auth"
	"feedesk/internal/config"
	"feedesk/internal/handlers"
	"feedesk/internal/middleware"
	"feedesk/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const sessionName = "feedesk_session"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config *config.Config
	Log    logrus.FieldLogger
	Tokens *auth.TokenService

	Users     handlers.UserStore
	Students  handlers.StudentStore
	Payments  handlers.PaymentStore
	Logins    handlers.LoginStore
	AuditLogs handlers.AuditStore
	Auditor   audit.Auditor
}

func NewRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog(d.Log), middleware.Metrics())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	gate := auth.NewGate(d.Tokens)
	can := func(c auth.Capability) gin.HandlerFunc {
		return middleware.RequireCapability(gate, c)
	}

	auditing := handlers.Auditing{
		Auditor: d.Auditor,
		Users:   d.Users,
		Mode:    cfg.AuditDiffMode,
		Policy:  cfg.AuditFailurePolicy,
	}
	payments := &handlers.PaymentHandler{Auditing: auditing, Payments: d.Payments, Students: d.Students}
	students := &handlers.StudentHandler{Auditing: auditing, Students: d.Students}
	users := &handlers.UserHandler{Auditing: auditing, Accounts: d.Users}
	authH := &handlers.AuthHandler{
		Accounts:     d.Users,
		Logins:       d.Logins,
		Tokens:       d.Tokens,
		CookieSecure: cfg.CookieSecure,
		Log:          d.Log,
	}
	loginRecords := &handlers.LoginRecordHandler{Users: d.Users, Logins: d.Logins}
	invoices := &handlers.InvoiceHandler{Payments: d.Payments}
	audits := &handlers.AuditHandler{Logs: d.AuditLogs}
	auditPage := &handlers.AuditPage{Logs: d.AuditLogs}

	// AUTH
	limiter := middleware.LoginRateLimiter(cfg.LoginRatePerMinute)
	r.POST("/api/auth/login", limiter.Middleware(), authH.Login)
	r.POST("/api/auth/logout", authH.Logout)

	api := r.Group("/api", middleware.Authenticate(gate))

	// PAYMENTS
	api.GET("/payments", can(auth.CapPaymentRead), payments.List)
	api.GET("/payments/:id", can(auth.CapPaymentRead), payments.Get)
	api.POST("/payments", can(auth.CapPaymentWrite), payments.Create)
	api.PATCH("/payments/:id", can(auth.CapPaymentWrite), payments.Update)
	api.PUT("/payments/:id", can(auth.CapPaymentWrite), payments.Update)
	api.DELETE("/payments/:id", can(auth.CapPaymentDelete), payments.Delete)
	api.GET("/invoice/:id", can(auth.CapInvoiceRead), invoices.Get)

	// STUDENTS
	api.GET("/student-registration", can(auth.CapStudentRead), students.List)
	api.GET("/student-registration/:id", can(auth.CapStudentRead), students.Get)
	api.POST("/student-registration", can(auth.CapStudentWrite), students.Create)
	api.PATCH("/student-registration/:id", can(auth.CapStudentWrite), students.Update)
	api.PUT("/student-registration/:id", can(auth.CapStudentWrite), students.Update)
	api.DELETE("/student-registration/:id", can(auth.CapStudentDelete), students.Delete)

	// EMPLOYEES (admin only)
	admin := api.Group("", can(auth.CapUserManage))
	admin.GET("/users", users.List)
	admin.GET("/users/:id", users.Get)
	admin.POST("/users", users.Create)
	admin.PATCH("/users/:id", users.Update)
	admin.PUT("/users/:id", users.Update)
	admin.DELETE("/users/:id", users.Delete)

	api.POST("/employee-logins", can(auth.CapLoginRecords), loginRecords.Create)
	api.GET("/employee-logins", can(auth.CapLoginRecords), loginRecords.List)

	// AUDIT
	api.GET("/audit", can(auth.CapAuditRead), audits.List)
	api.GET("/audit/:id", can(auth.CapAuditRead), audits.Get)
	api.DELETE("/audit/:id", can(auth.CapAuditDelete), audits.Delete)

	r.GET("/audit-log",
		middleware.RequirePage(gate, "/audit-log"),
		middleware.InjectUser(d.Users),
		auditPage.Show,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}
