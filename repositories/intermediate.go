package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// IntermediateRepository stores many-to-many join rows, such as the add-ons a
// coffee offers. Join rows have composite keys and are never updated in place.
type IntermediateRepository[T any] struct {
	db     *gorm.DB
	entity string
}

func NewIntermediate[T any](db *gorm.DB, entity string) *IntermediateRepository[T] {
	return &IntermediateRepository[T]{db: db, entity: entity}
}

func (r *IntermediateRepository[T]) WithTx(tx *gorm.DB) *IntermediateRepository[T] {
	return &IntermediateRepository[T]{db: tx, entity: r.entity}
}

func (r *IntermediateRepository[T]) Add(ctx context.Context, item *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("add %s: %w", r.entity, err)
	}
	return item, nil
}

// Remove deletes every join row matching the given column values.
func (r *IntermediateRepository[T]) Remove(ctx context.Context, match map[string]any) error {
	if err := r.db.WithContext(ctx).Where(match).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("remove %s: %w", r.entity, err)
	}
	return nil
}
