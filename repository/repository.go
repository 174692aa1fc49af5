// Package repository provides the data access layer over gorm.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the shared CRUD access for one model type.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the handle for queries that are specific to one model.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// FindAll returns every row, ordered by order when it is not empty.
func (r *Repository[T]) FindAll(ctx context.Context, order string) ([]T, error) {
	var rows []T
	query := r.db.WithContext(ctx)
	if order != "" {
		query = query.Order(order)
	} else {
		query = query.Order("id")
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", rows, err)
	}
	return rows, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find %T by id %d: %w", row, id, err)
	}
	return &row, nil
}

// Exists reports whether a row matches every column in where.
// A nil value matches NULL.
func (r *Repository[T]) Exists(ctx context.Context, where map[string]any) (bool, error) {
	var count int64
	var row T
	err := r.db.WithContext(ctx).Model(&row).Where(where).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to probe %T: %w", row, err)
	}
	return count > 0, nil
}

func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create %T: %w", row, err)
	}
	return nil
}

func (r *Repository[T]) Save(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(row).Error; err != nil {
		return fmt.Errorf("failed to update %T: %w", row, err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Delete(row).Error; err != nil {
		return fmt.Errorf("failed to delete %T: %w", row, err)
	}
	return nil
}
