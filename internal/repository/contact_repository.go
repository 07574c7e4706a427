package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contactbook/engine/internal/models"
	appErr "github.com/contactbook/engine/pkg/errors"
)

// ContactSort names a column contacts can be listed by.
type ContactSort string

const (
	SortByName      ContactSort = "name"
	SortByCreatedAt ContactSort = "created_at"
	SortByUpdatedAt ContactSort = "updated_at"
)

// Valid reports whether s is one of the supported sort columns.
func (s ContactSort) Valid() bool {
	switch s {
	case SortByName, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

// orderClause sorts names alphabetically and timestamps most recent first.
func (s ContactSort) orderClause() string {
	switch s {
	case SortByCreatedAt:
		return "created_at DESC"
	case SortByUpdatedAt:
		return "updated_at DESC"
	default:
		return "name ASC"
	}
}

// ContactFilter narrows a contact listing. Empty fields do not filter.
type ContactFilter struct {
	Search   string
	Category string
	SortBy   ContactSort
}

// CategoryCount is one row of the per-category aggregate.
type CategoryCount struct {
	Category string
	Count    int64
}

type ContactRepository interface {
	OwnedRepository[models.Contact]
	List(ctx context.Context, userID uuid.UUID, f ContactFilter) ([]models.Contact, error)
	ListForExport(ctx context.Context, userID uuid.UUID) ([]models.Contact, error)
	NameExistsFold(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context, userID uuid.UUID) ([]CategoryCount, error)
}

type contactRepository struct {
	*baseRepository[models.Contact]
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{baseRepository: newBaseRepository[models.Contact](db, "contact"), db: db}
}

func (r *contactRepository) List(ctx context.Context, userID uuid.UUID, f ContactFilter) ([]models.Contact, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?) ESCAPE '\\'", "%"+escapeLike(f.Search)+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	out := []models.Contact{}
	if err := q.Order(f.SortBy.orderClause()).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list contacts failed")
	}
	return out, nil
}

// ListForExport returns every contact of the user in creation order.
func (r *contactRepository) ListForExport(ctx context.Context, userID uuid.UUID) ([]models.Contact, error) {
	out := []models.Contact{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list contacts for export failed")
	}
	return out, nil
}

// NameExistsFold reports whether the user has a contact whose whole name
// equals name ignoring case.
func (r *contactRepository) NameExistsFold(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Contact{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&n).Error
	if err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check contact name failed")
	}
	return n > 0, nil
}

func (r *contactRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Contact{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count contacts failed")
	}
	return n, nil
}

// CountByCategory groups by the literal category string stored on each
// contact; it does not consult the categories table.
func (r *contactRepository) CountByCategory(ctx context.Context, userID uuid.UUID) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).Model(&models.Contact{}).
		Select("category, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "count contacts by category failed")
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
