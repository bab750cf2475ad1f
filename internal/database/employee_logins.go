package database

import (
	"context"

	"feedesk/internal/models"

	"gorm.io/gorm"
)

type LoginRepo struct {
	t table[models.EmployeeLoginDetail]
}

func NewLoginRepo(db *gorm.DB) *LoginRepo {
	return &LoginRepo{t: table[models.EmployeeLoginDetail]{db: db, order: "created_at ASC"}}
}

func (r *LoginRepo) Create(ctx context.Context, d *models.EmployeeLoginDetail) error {
	return r.t.create(ctx, d)
}

// List returns login records oldest first with a short user projection.
func (r *LoginRepo) List(ctx context.Context, opts ListOptions) ([]models.EmployeeLoginDetail, error) {
	var out []models.EmployeeLoginDetail
	err := r.t.db.WithContext(ctx).
		Scopes(opts.scope).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "employee_id", "login_type")
		}).
		Order(r.t.order).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
