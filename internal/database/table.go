package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListOptions pages a list query. A zero Limit returns every row.
type ListOptions struct {
	Limit  int
	Offset int
}

func (o ListOptions) scope(tx *gorm.DB) *gorm.DB {
	if o.Limit > 0 {
		tx = tx.Limit(o.Limit)
	}
	if o.Offset > 0 {
		tx = tx.Offset(o.Offset)
	}
	return tx
}

// table holds the CRUD statements shared by the record repositories.
// Associations are never written through it.
type table[T any] struct {
	db    *gorm.DB
	order string
}

func (t table[T]) list(ctx context.Context, opts ListOptions, preload ...string) ([]T, error) {
	tx := t.db.WithContext(ctx).Scopes(opts.scope)
	for _, p := range preload {
		tx = tx.Preload(p)
	}
	var out []T
	if err := tx.Order(t.order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (t table[T]) get(ctx context.Context, id string, preload ...string) (*T, error) {
	tx := t.db.WithContext(ctx)
	for _, p := range preload {
		tx = tx.Preload(p)
	}
	var v T
	if err := tx.First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (t table[T]) create(ctx context.Context, v *T) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

// save writes every column of an existing row. A row deleted in the meantime
// is reported as not found and never re-inserted.
func (t table[T]) save(ctx context.Context, v *T) error {
	res := t.db.WithContext(ctx).Model(v).
		Select("*").
		Omit(clause.Associations, "id", "created_at").
		Updates(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, v *T) error {
	res := t.db.WithContext(ctx).Delete(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
