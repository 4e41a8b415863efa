// Package repositories provides gorm backed CRUD accessors, one per entity.
// Repositories never touch associations; services compose them.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/coffee-store/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository[T any] struct {
	db       *gorm.DB
	entity   string
	preloads []string
}

// New creates a repository for T. entity is used in error messages, preloads
// are applied to every read.
func New[T any](db *gorm.DB, entity string, preloads ...string) *Repository[T] {
	return &Repository[T]{db: db, entity: entity, preloads: preloads}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, entity: r.entity, preloads: r.preloads}
}

func (r *Repository[T]) read(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *Repository[T]) Add(ctx context.Context, item *T) (*T, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return nil, fmt.Errorf("add %s: %w", r.entity, err)
	}
	return item, nil
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	err := r.read(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewElementNotFound(r.entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.entity, id, err)
	}
	return &item, nil
}

// GetAll returns every row ordered by id. An empty table is not an error here.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.read(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.entity, err)
	}
	return items, nil
}

// Find returns the rows matching query ordered by id.
func (r *Repository[T]) Find(ctx context.Context, query any, args ...any) ([]T, error) {
	var items []T
	if err := r.read(ctx).Where(query, args...).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find %s: %w", r.entity, err)
	}
	return items, nil
}

// FindOne returns the first row matching query or an ErrElementNotFound.
func (r *Repository[T]) FindOne(ctx context.Context, query any, args ...any) (*T, error) {
	var item T
	err := r.read(ctx).Where(query, args...).Order("id asc").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", r.entity, apperrors.ErrElementNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.entity, err)
	}
	return &item, nil
}

func (r *Repository[T]) Update(ctx context.Context, item *T) (*T, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
		return nil, fmt.Errorf("update %s: %w", r.entity, err)
	}
	return item, nil
}

// Delete removes the row with id and returns it as it was before deletion.
func (r *Repository[T]) Delete(ctx context.Context, id uint) (*T, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(new(T), id).Error; err != nil {
		return nil, fmt.Errorf("delete %s %d: %w", r.entity, id, err)
	}
	return item, nil
}

// DeleteWhere removes the rows matching query and reports how many were removed.
func (r *Repository[T]) DeleteWhere(ctx context.Context, query any, args ...any) (int64, error) {
	res := r.db.WithContext(ctx).Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s: %w", r.entity, res.Error)
	}
	return res.RowsAffected, nil
}
