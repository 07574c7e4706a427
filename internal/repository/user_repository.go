package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/contactbook/engine/internal/models"
	appErr "github.com/contactbook/engine/pkg/errors"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	*baseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{baseRepository: newBaseRepository[models.User](db, "user"), db: db}
}

// Create reports a unique-index violation on email as a duplicate.
func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	err := r.baseRepository.Create(ctx, u)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appErr.Wrap(err, appErr.CodeDuplicateEmail, "email already registered")
	}
	return err
}

// GetByEmail matches the email exactly as stored.
func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check email failed")
	}
	return n > 0, nil
}
