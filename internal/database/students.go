package database

import (
	"context"

	"feedesk/internal/models"

	"gorm.io/gorm"
)

type StudentRepo struct {
	t table[models.Student]
}

func NewStudentRepo(db *gorm.DB) *StudentRepo {
	return &StudentRepo{t: table[models.Student]{db: db, order: "created_at DESC"}}
}

func (r *StudentRepo) List(ctx context.Context, opts ListOptions) ([]models.Student, error) {
	return r.t.list(ctx, opts)
}

func (r *StudentRepo) Get(ctx context.Context, id string) (*models.Student, error) {
	return r.t.get(ctx, id)
}

func (r *StudentRepo) Create(ctx context.Context, s *models.Student) error {
	return r.t.create(ctx, s)
}

func (r *StudentRepo) Update(ctx context.Context, s *models.Student) error {
	return r.t.save(ctx, s)
}

func (r *StudentRepo) Delete(ctx context.Context, s *models.Student) error {
	return r.t.delete(ctx, s)
}
