package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Email    string  `gorm:"size:255" json:"email"`
	Phone    string  `gorm:"size:50" json:"phone"`
	Course   string  `gorm:"size:255" json:"course"`
	Branch   string  `gorm:"size:100" json:"branch"`
	TotalFee float64 `json:"totalFee"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Student) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s Student) AuditSnapshot() Values {
	return Values{
		"id":        StringValue(s.ID),
		"name":      StringValue(s.Name),
		"email":     StringValue(s.Email),
		"phone":     StringValue(s.Phone),
		"course":    StringValue(s.Course),
		"branch":    StringValue(s.Branch),
		"totalFee":  NumberValue(s.TotalFee),
		"createdAt": TimeValue(s.CreatedAt),
		"updatedAt": TimeValue(s.UpdatedAt),
	}
}

type StudentPatch struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email"`
	Phone    *string  `json:"phone"`
	Course   *string  `json:"course"`
	Branch   *string  `json:"branch"`
	TotalFee *float64 `json:"totalFee"`
}

func (p StudentPatch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Course != nil {
		s.Course = *p.Course
	}
	if p.Branch != nil {
		s.Branch = *p.Branch
	}
	if p.TotalFee != nil {
		s.TotalFee = *p.TotalFee
	}
}
