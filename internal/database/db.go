package database

import (
	"context"
	"fmt"
	"time"

	"feedesk/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxConnectAttempts = 10
	connectRetryDelay  = 2 * time.Second
)

// Config returns the gorm settings shared by the server and repository tests.
// A nil logger silences gorm.
func Config(log logrus.FieldLogger) *gorm.Config {
	cfg := &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	}
	if log == nil {
		cfg.Logger = gormlogger.Discard
	} else {
		cfg.Logger = gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}
	return cfg
}

// Open connects to postgres, retrying while the database comes up.
func Open(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxConnectAttempts; i++ {
		log.Infof("trying to connect to DB (attempt %d/%d)", i, maxConnectAttempts)

		db, err = gorm.Open(postgres.Open(dsn), Config(log))
		if err == nil {
			log.Info("connected to DB")
			return db, nil
		}

		log.WithError(err).Warn("failed to connect to DB")
		time.Sleep(connectRetryDelay)
	}
	return nil, fmt.Errorf("connect to db after %d attempts: %w", maxConnectAttempts, err)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Payment{},
		&models.EmployeeLoginDetail{},
		&models.AuditLog{},
	)
}

// SeedAdmin creates the first administrator when no Admin account exists.
// It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		EmployeeID:   "EMP-0001",
		Name:         "Administrator",
		Email:        email,
		Role:         models.RoleAdmin,
		LoginType:    "office",
		PasswordHash: string(hash),
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}
	return true, nil
}
