package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contactbook/engine/internal/models"
	appErr "github.com/contactbook/engine/pkg/errors"
)

type CategoryRepository interface {
	OwnedRepository[models.Category]
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	NameExists(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}

type categoryRepository struct {
	*baseRepository[models.Category]
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{baseRepository: newBaseRepository[models.Category](db, "category"), db: db}
}

// Create reports a violation of the (user_id, name) unique index as a duplicate.
func (r *categoryRepository) Create(ctx context.Context, c *models.Category) error {
	err := r.baseRepository.Create(ctx, c)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appErr.Wrap(err, appErr.CodeDuplicateCategory, "category already exists")
	}
	return err
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	out := []models.Category{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list categories by user failed")
	}
	return out, nil
}

// NameExists compares names exactly (case-sensitive).
func (r *categoryRepository) NameExists(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name).Count(&n).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check category name failed")
	}
	return n > 0, nil
}
