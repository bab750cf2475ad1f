package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

func (a AuditAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// UnknownNetwork fills in missing client IP or user agent.
const UnknownNetwork = "Unknown"

// AuditLog is an append-only change record. Rows are never updated.
type AuditLog struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	UserID *string     `gorm:"type:uuid;index" json:"userId"`
	User   *AuditActor `gorm:"foreignKey:UserID" json:"user"`
	Role   *UserRole   `gorm:"type:varchar(20)" json:"role"` // role at the time of the action

	Module   string      `gorm:"size:50;not null;index" json:"module"` // "Payment", "Student", "User"
	RecordID string      `gorm:"size:64;not null" json:"recordId"`
	Action   AuditAction `gorm:"type:varchar(10);not null" json:"action"`

	OldValues datatypes.JSONType[Values] `gorm:"type:jsonb;not null" json:"oldValues"`
	NewValues datatypes.JSONType[Values] `gorm:"type:jsonb;not null" json:"newValues"`

	IPAddress string `gorm:"size:255" json:"ipAddress"`
	UserAgent string `gorm:"type:text" json:"userAgent"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a AuditLog) Old() Values { return a.OldValues.Data() }
func (a AuditLog) New() Values { return a.NewValues.Data() }

// AuditActor is the minimal user projection joined onto audit entries.
type AuditActor struct {
	ID    string `json:"-"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (AuditActor) TableName() string { return "users" }
