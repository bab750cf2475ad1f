package handlers

import (
	"context"

	"feedesk/internal/database"
	"feedesk/internal/models"
)

// UserFinder resolves a user by id. Mutation handlers use it to re-read the
// actor's current role before writing an audit entry.
type UserFinder interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

type PaymentStore interface {
	List(ctx context.Context, opts database.ListOptions) ([]models.Payment, error)
	Get(ctx context.Context, id string) (*models.Payment, error)
	Create(ctx context.Context, p *models.Payment) error
	Update(ctx context.Context, p *models.Payment) error
	Delete(ctx context.Context, p *models.Payment) error
}

type StudentStore interface {
	List(ctx context.Context, opts database.ListOptions) ([]models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, s *models.Student) error
	Update(ctx context.Context, s *models.Student) error
	Delete(ctx context.Context, s *models.Student) error
}

type UserStore interface {
	UserFinder
	List(ctx context.Context, opts database.ListOptions) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, u *models.User) error
	SaveLoginState(ctx context.Context, u *models.User) error
}

type LoginStore interface {
	Create(ctx context.Context, d *models.EmployeeLoginDetail) error
	List(ctx context.Context, opts database.ListOptions) ([]models.EmployeeLoginDetail, error)
}

type AuditStore interface {
	List(ctx context.Context, opts database.ListOptions) ([]models.AuditLog, error)
	Get(ctx context.Context, id string) (*models.AuditLog, error)
	Delete(ctx context.Context, id string) (*models.AuditLog, error)
}
