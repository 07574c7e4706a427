package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultCategory   = "General"
	DefaultPhoneLabel = "mobile"
	DefaultEmailLabel = "personal"
)

// Phone is one entry of a contact's ordered phone list.
type Phone struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

// UnmarshalJSON fills in the default label when the document omits it.
func (p *Phone) UnmarshalJSON(b []byte) error {
	type plain Phone
	v := plain{Label: DefaultPhoneLabel}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Phone(v)
	return nil
}

// EmailAddress is one entry of a contact's ordered email list.
type EmailAddress struct {
	Email string `json:"email"`
	Label string `json:"label"`
}

func (e *EmailAddress) UnmarshalJSON(b []byte) error {
	type plain EmailAddress
	v := plain{Label: DefaultEmailLabel}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*e = EmailAddress(v)
	return nil
}

// Contact is a person in a user's address book.
type Contact struct {
	ID             uuid.UUID                         `gorm:"type:uuid;primaryKey" json:"contact_id"`
	UserID         uuid.UUID                         `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string                            `gorm:"not null" json:"name"`
	Phones         datatypes.JSONSlice[Phone]        `gorm:"type:jsonb;not null" json:"phones" swaggertype:"array,object"`
	Emails         datatypes.JSONSlice[EmailAddress] `gorm:"type:jsonb;not null" json:"emails" swaggertype:"array,object"`
	Category       string                            `gorm:"not null;index" json:"category"`
	Notes          string                            `gorm:"not null" json:"notes"`
	ProfilePicture *string                           `gorm:"type:text" json:"profile_picture"`
	CreatedAt      time.Time                         `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt      time.Time                         `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// BeforeSave keeps the JSON columns as arrays rather than null.
func (c *Contact) BeforeSave(tx *gorm.DB) error {
	if c.Phones == nil {
		c.Phones = datatypes.JSONSlice[Phone]{}
	}
	if c.Emails == nil {
		c.Emails = datatypes.JSONSlice[EmailAddress]{}
	}
	return nil
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = tx.NowFunc()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	return nil
}
