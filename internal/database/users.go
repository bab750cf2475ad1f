package database

import (
	"context"
	"strings"

	"feedesk/internal/models"

	"gorm.io/gorm"
)

type UserRepo struct {
	t table[models.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{t: table[models.User]{db: db, order: "created_at ASC"}}
}

func (r *UserRepo) List(ctx context.Context, opts ListOptions) ([]models.User, error) {
	return r.t.list(ctx, opts)
}

func (r *UserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	return r.t.get(ctx, id)
}

// GetByEmail matches the address case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.t.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.t.create(ctx, u)
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	return r.t.save(ctx, u)
}

func (r *UserRepo) Delete(ctx context.Context, u *models.User) error {
	return r.t.delete(ctx, u)
}

// SaveLoginState writes only the lockout counters of u.
func (r *UserRepo) SaveLoginState(ctx context.Context, u *models.User) error {
	return r.t.db.WithContext(ctx).
		Model(u).
		UpdateColumns(map[string]interface{}{
			"failed_attempts": u.FailedAttempts,
			"is_locked":       u.IsLocked,
		}).Error
}
