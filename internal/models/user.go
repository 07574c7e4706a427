package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Every category and contact belongs to exactly one user.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-" swaggerignore:"true"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
}

// BeforeCreate assigns the id and creation time when the caller has not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = tx.NowFunc()
	}
	return nil
}

// UserSummary is the public projection of a user.
type UserSummary struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.ID, Email: u.Email, Name: u.Name}
}
