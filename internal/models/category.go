package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultCategoryColor is used when a category is created without a colour.
const DefaultCategoryColor = "#008CBA"

// Category is a named, coloured tag owned by a user. Names are unique per
// owner under exact comparison.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_user_name,priority:1" json:"user_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_categories_user_name,priority:2" json:"name"`
	Color     string    `gorm:"type:varchar(32);not null" json:"color"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = tx.NowFunc()
	}
	return nil
}
