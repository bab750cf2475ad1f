package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "Admin"
	RoleSubAdmin UserRole = "SUB_ADMIN"
	RoleAccounts UserRole = "Accounts"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSubAdmin, RoleAccounts:
		return true
	}
	return false
}

// MaxFailedAttempts locks the account once reached.
const MaxFailedAttempts = 5

type User struct {
	ID         string   `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID string   `gorm:"size:50;index" json:"employeeId"`
	Name       string   `gorm:"size:255;not null" json:"name"`
	Email      string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone      string   `gorm:"size:50" json:"phone"`
	Branch     string   `gorm:"size:100" json:"branch"`
	Role       UserRole `gorm:"type:varchar(20);not null" json:"role"`
	LoginType  string   `gorm:"size:50" json:"loginType"` // office / remote

	PasswordHash   string `gorm:"not null" json:"-"`
	FailedAttempts int    `gorm:"not null" json:"failedAttempts"`
	IsLocked       bool   `gorm:"not null" json:"isLocked"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// AuditSnapshot lists every audited column. The password hash is never part
// of it.
func (u User) AuditSnapshot() Values {
	return Values{
		"id":             StringValue(u.ID),
		"employeeId":     StringValue(u.EmployeeID),
		"name":           StringValue(u.Name),
		"email":          StringValue(u.Email),
		"phone":          StringValue(u.Phone),
		"branch":         StringValue(u.Branch),
		"role":           StringValue(string(u.Role)),
		"loginType":      StringValue(u.LoginType),
		"failedAttempts": IntValue(u.FailedAttempts),
		"isLocked":       BoolValue(u.IsLocked),
		"createdAt":      TimeValue(u.CreatedAt),
		"updatedAt":      TimeValue(u.UpdatedAt),
	}
}

// UserPatch carries a partial update. Nil fields are left untouched.
type UserPatch struct {
	EmployeeID *string   `json:"employeeId"`
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Branch     *string   `json:"branch"`
	Role       *UserRole `json:"role"`
	LoginType  *string   `json:"loginType"`
	IsLocked   *bool     `json:"isLocked"`
	Password   *string   `json:"password"`
}

func (p UserPatch) Apply(u *User) {
	if p.EmployeeID != nil {
		u.EmployeeID = *p.EmployeeID
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Branch != nil {
		u.Branch = *p.Branch
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.LoginType != nil {
		u.LoginType = *p.LoginType
	}
	if p.IsLocked != nil {
		u.IsLocked = *p.IsLocked
		if !u.IsLocked {
			u.FailedAttempts = 0
		}
	}
}

// RegisterFailedLogin counts a failed password check and locks the account
// on the last allowed attempt.
func (u *User) RegisterFailedLogin() {
	if u.FailedAttempts < MaxFailedAttempts {
		u.FailedAttempts++
	}
	if u.FailedAttempts >= MaxFailedAttempts {
		u.IsLocked = true
	}
}

// AttemptsLeft is the number of failures allowed before the account locks.
func (u User) AttemptsLeft() int {
	if n := MaxFailedAttempts - u.FailedAttempts; n > 0 {
		return n
	}
	return 0
}

// ResetLogin clears the lockout counters after a successful login.
func (u *User) ResetLogin() {
	u.FailedAttempts = 0
	u.IsLocked = false
}
