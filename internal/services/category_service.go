package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/internal/repository"
	appErr "github.com/contactbook/engine/pkg/errors"
	"github.com/contactbook/engine/pkg/logger"
)

// CategorySeed is a category every new account starts with.
type CategorySeed struct {
	Name  string
	Color string
}

// DefaultCategories are created, in this order, for every registered user.
var DefaultCategories = []CategorySeed{
	{Name: "Family", Color: "#FF6B6B"},
	{Name: "Friends", Color: "#4ECDC4"},
	{Name: "Work", Color: "#45B7D1"},
	{Name: "General", Color: "#96CEB4"},
}

type CategoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Category, error)
	Create(ctx context.Context, userID uuid.UUID, name, color string) (*models.Category, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
	SeedDefaults(ctx context.Context, userID uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	now        Clock
}

func NewCategoryService(categories repository.CategoryRepository, now Clock) CategoryService {
	if now == nil {
		now = SystemClock
	}
	return &categoryService{categories: categories, now: now}
}

var _ CategoryService = (*categoryService)(nil)

func (s *categoryService) List(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

// Create adds a category. Names are compared exactly, so "work" and "Work"
// may coexist.
func (s *categoryService) Create(ctx context.Context, userID uuid.UUID, name, color string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, appErr.New(appErr.CodeInvalid, "category name cannot be empty")
	}
	if strings.TrimSpace(color) == "" {
		color = models.DefaultCategoryColor
	}

	exists, err := s.categories.NameExists(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErr.New(appErr.CodeDuplicateCategory, "category already exists")
	}

	c := &models.Category{UserID: userID, Name: name, Color: color, CreatedAt: s.now()}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.L().Info("category created", logger.UserID(userID), zap.Stringer("category_id", c.ID), zap.String("name", name))
	return c, nil
}

// Delete removes the category only; contacts filed under its name keep it.
func (s *categoryService) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	if err := s.categories.DeleteOwned(ctx, userID, categoryID); err != nil {
		return err
	}
	logger.L().Info("category deleted", logger.UserID(userID), zap.Stringer("category_id", categoryID))
	return nil
}

func (s *categoryService) SeedDefaults(ctx context.Context, userID uuid.UUID) error {
	return seedDefaultCategories(ctx, s.categories, userID, s.now())
}

func seedDefaultCategories(ctx context.Context, repo repository.CategoryRepository, userID uuid.UUID, at time.Time) error {
	for i, d := range DefaultCategories {
		c := &models.Category{UserID: userID, Name: d.Name, Color: d.Color, CreatedAt: stagger(at, i)}
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
