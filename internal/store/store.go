// Package store persists taxonomy records through gorm
package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/aethra/taxonomy/internal/errors"
	"github.com/aethra/taxonomy/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository stores one record type. P is the pointer type of T so the
// repository can call the models.Record methods.
type Repository[T any, P interface {
	*T
	models.Record
}] struct {
	db       *gorm.DB
	resource string
	order    string
}

// NewRepository creates a repository. resource names the record in error
// messages and order is the ORDER BY clause used by List.
func NewRepository[T any, P interface {
	*T
	models.Record
}](db *gorm.DB, resource, order string) *Repository[T, P] {
	if order == "" {
		order = "created_at"
	}
	return &Repository[T, P]{db: db, resource: resource, order: order}
}

// Resource returns the record name used in error messages
func (r *Repository[T, P]) Resource() string {
	return r.resource
}

// ListLimit caps the number of records List returns
const ListLimit = 1000

// List returns up to ListLimit records in list order
func (r *Repository[T, P]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.db.WithContext(ctx).Order(r.order).Limit(ListLimit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.resource, err)
	}
	return items, nil
}

// Get returns the record with id or a NotFoundError
func (r *Repository[T, P]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewNotFoundError(r.resource)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.resource, err)
	}
	return &item, nil
}

// Create validates item, assigns a new id and inserts it
func (r *Repository[T, P]) Create(ctx context.Context, item P) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.SetID(uuid.New().String())
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return r.translate("create", err)
	}
	return nil
}

// Update validates item and writes every column except created_at.
// The record must already exist.
func (r *Repository[T, P]) Update(ctx context.Context, item P) error {
	if err := item.Validate(); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(item).Select("*").Omit("id", "created_at").
		Where("id = ?", item.GetID()).Updates(item)
	if res.Error != nil {
		return r.translate("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NewNotFoundError(r.resource)
	}
	return nil
}

// Delete removes the record with id
func (r *Repository[T, P]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", r.resource, res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NewNotFoundError(r.resource)
	}
	return nil
}

// NameTaken reports whether another record already uses name, compared
// case-insensitively. excludeID is skipped so a record can keep its own name.
func (r *Repository[T, P]) NameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(new(T)).Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s name: %w", r.resource, err)
	}
	return count > 0, nil
}

// Count returns the number of stored records
func (r *Repository[T, P]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", r.resource, err)
	}
	return count, nil
}

func (r *Repository[T, P]) translate(op string, err error) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return errors.NewConflictError(r.resource)
	}
	return fmt.Errorf("%s %s: %w", op, r.resource, err)
}

// isUniqueViolation catches drivers that gorm does not translate
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
