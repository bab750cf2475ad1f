package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"feedesk/internal/audit"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string

	JWTSecret string
	JWTTTL    time.Duration
	// CookieSecure marks the token and session cookies Secure (HTTPS only).
	CookieSecure bool

	LogLevel  string
	LogFormat string // text | json

	AuditDiffMode      audit.DiffMode
	AuditFailurePolicy audit.FailurePolicy

	AdminEmail    string
	AdminPassword string

	// LoginRatePerMinute caps login attempts per client IP.
	LoginRatePerMinute int
}

// Load reads .env (if present) and the environment, exiting on invalid
// configuration.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// FromEnv builds the config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTTTL:       time.Duration(getEnvInt("JWT_EXPIRE_HOURS", 24)) * time.Hour,
		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AuditDiffMode:      audit.DiffMode(getEnv("AUDIT_DIFF_MODE", string(audit.DiffAllowlist))),
		AuditFailurePolicy: audit.FailurePolicy(getEnv("AUDIT_FAILURE_POLICY", string(audit.PolicyIgnore))),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@feedesk.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin123!"),

		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is not set"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if !c.AuditDiffMode.Valid() {
		errs = append(errs, fmt.Errorf("AUDIT_DIFF_MODE must be allowlist or changed, got %q", c.AuditDiffMode))
	}
	if !c.AuditFailurePolicy.Valid() {
		errs = append(errs, fmt.Errorf("AUDIT_FAILURE_POLICY must be ignore or warn, got %q", c.AuditFailurePolicy))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
