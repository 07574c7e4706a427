package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appErr "github.com/contactbook/engine/pkg/errors"
)

// BaseRepository defines common CRUD operations.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id any, dest *T) error
}

// OwnedRepository adds operations scoped to the owning user. A row owned by
// someone else is indistinguishable from a missing one.
type OwnedRepository[T any] interface {
	BaseRepository[T]
	GetOwned(ctx context.Context, ownerID, id uuid.UUID, dest *T) error
	UpdateOwned(ctx context.Context, ownerID uuid.UUID, obj *T) error
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error
}

type baseRepository[T any] struct {
	db     *gorm.DB
	entity string
}

func newBaseRepository[T any](db *gorm.DB, entity string) *baseRepository[T] {
	return &baseRepository[T]{db: db, entity: entity}
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, fmt.Sprintf("create %s failed", r.entity))
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id any, dest *T) error {
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		return r.notFoundOr(err, "get")
	}
	return nil
}

func (r *baseRepository[T]) GetOwned(ctx context.Context, ownerID, id uuid.UUID, dest *T) error {
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(dest).Error; err != nil {
		return r.notFoundOr(err, "get")
	}
	return nil
}

// UpdateOwned writes every column of obj in a single statement conditioned
// on both the primary key and the owner.
func (r *baseRepository[T]) UpdateOwned(ctx context.Context, ownerID uuid.UUID, obj *T) error {
	res := r.db.WithContext(ctx).Model(obj).Where("user_id = ?", ownerID).Select("*").Omit("id", "user_id", "created_at").Updates(obj)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, fmt.Sprintf("update %s failed", r.entity))
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("%s not found", r.entity))
	}
	return nil
}

func (r *baseRepository[T]) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	var t T
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&t)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, fmt.Sprintf("delete %s failed", r.entity))
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("%s not found", r.entity))
	}
	return nil
}

func (r *baseRepository[T]) notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("%s not found", r.entity))
	}
	return appErr.Wrap(err, appErr.CodeInternal, fmt.Sprintf("%s %s failed", op, r.entity))
}
