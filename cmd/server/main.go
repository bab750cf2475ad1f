package main

import (
	"context"
	"fmt"
	"os"

	"feedesk/internal/audit"
	"feedesk/internal/auth"
	"feedesk/internal/config"
	"feedesk/internal/database"
	"feedesk/internal/logger"
	"feedesk/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DBDSN, log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate")
	}
	created, err := database.SeedAdmin(context.Background(), db, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.WithError(err).Error("failed to seed admin user")
	} else if created {
		log.WithField("email", cfg.AdminEmail).Warn("created default admin user, change its password")
	}

	auditLogs := database.NewAuditRepo(db)
	r, err := server.NewRouter(server.Deps{
		Config:    cfg,
		Log:       log,
		Tokens:    auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Users:     database.NewUserRepo(db),
		Students:  database.NewStudentRepo(db),
		Payments:  database.NewPaymentRepo(db),
		Logins:    database.NewLoginRepo(db),
		AuditLogs: auditLogs,
		Auditor:   audit.NewRecorder(auditLogs, log),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to build router")
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.WithField("addr", addr).Info("starting server")
	if err := r.Run(addr); err != nil {
		log.WithError(err).Error("server error")
		os.Exit(1)
	}
}
