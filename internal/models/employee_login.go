package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeLoginDetail is one recorded employee sign-in.
type EmployeeLoginDetail struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string      `gorm:"type:uuid;not null;index" json:"userId"`
	User      *LoginActor `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IPAddress string      `gorm:"size:255" json:"ipAddress"`
	UserAgent string      `gorm:"type:text" json:"userAgent"`
	CreatedAt time.Time   `gorm:"index" json:"createdAt"`
}

func (d *EmployeeLoginDetail) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// LoginActor is the user projection shown next to login records.
type LoginActor struct {
	ID         string   `json:"-"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	EmployeeID string   `json:"employeeId"`
	LoginType  string   `json:"loginType"`
	Phone      string   `json:"phone,omitempty"`
	Branch     string   `json:"branch,omitempty"`
	Role       UserRole `json:"role,omitempty"`
}

func (LoginActor) TableName() string { return "users" }
