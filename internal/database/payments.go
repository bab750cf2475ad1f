package database

import (
	"context"

	"feedesk/internal/models"

	"gorm.io/gorm"
)

type PaymentRepo struct {
	t table[models.Payment]
}

func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{t: table[models.Payment]{db: db, order: "created_at DESC"}}
}

// List returns payments newest first with their students attached.
func (r *PaymentRepo) List(ctx context.Context, opts ListOptions) ([]models.Payment, error) {
	return r.t.list(ctx, opts, "Student")
}

func (r *PaymentRepo) Get(ctx context.Context, id string) (*models.Payment, error) {
	return r.t.get(ctx, id, "Student")
}

func (r *PaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return r.t.create(ctx, p)
}

func (r *PaymentRepo) Update(ctx context.Context, p *models.Payment) error {
	return r.t.save(ctx, p)
}

func (r *PaymentRepo) Delete(ctx context.Context, p *models.Payment) error {
	return r.t.delete(ctx, p)
}
