package database

import (
	"context"

	"feedesk/internal/models"

	"gorm.io/gorm"
)

// AuditRepo stores audit entries. Entries are only ever inserted, read and
// hard-deleted.
type AuditRepo struct {
	t table[models.AuditLog]
}

func NewAuditRepo(db *gorm.DB) *AuditRepo {
	return &AuditRepo{t: table[models.AuditLog]{db: db, order: "created_at DESC"}}
}

func (r *AuditRepo) Append(ctx context.Context, entry *models.AuditLog) error {
	return r.t.create(ctx, entry)
}

func withActor(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	})
}

// List returns entries newest first, each with the acting user's name and email.
func (r *AuditRepo) List(ctx context.Context, opts ListOptions) ([]models.AuditLog, error) {
	var out []models.AuditLog
	err := r.t.db.WithContext(ctx).
		Scopes(withActor, opts.scope).
		Order(r.t.order).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AuditRepo) Get(ctx context.Context, id string) (*models.AuditLog, error) {
	var e models.AuditLog
	if err := r.t.db.WithContext(ctx).Scopes(withActor).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the entry and returns it as it was stored.
func (r *AuditRepo) Delete(ctx context.Context, id string) (*models.AuditLog, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.t.delete(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
