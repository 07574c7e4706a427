package types

import (
	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/internal/services"
	"github.com/contactbook/engine/pkg/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
	Name     string `json:"name" example:"Alice"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CategoryCreateRequest may also arrive as the name and color query parameters.
type CategoryCreateRequest struct {
	Name  string `json:"name" example:"Gym"`
	Color string `json:"color" example:"#008CBA"`
}

// ContactPatchRequest is the body of a partial contact update. Fields left
// out keep their stored value; an explicit null clears them.
type ContactPatchRequest struct {
	Name           utils.Optional[string]                `json:"name" swaggertype:"string" example:"Bob"`
	Phones         utils.Optional[[]models.Phone]        `json:"phones" swaggertype:"array,object"`
	Emails         utils.Optional[[]models.EmailAddress] `json:"emails" swaggertype:"array,object"`
	Category       utils.Optional[string]                `json:"category" swaggertype:"string" example:"Work"`
	Notes          utils.Optional[string]                `json:"notes" swaggertype:"string"`
	ProfilePicture utils.Optional[*string]               `json:"profile_picture" swaggertype:"string" extensions:"x-nullable"`
}

func (r ContactPatchRequest) Patch() services.ContactPatch {
	return services.ContactPatch{
		Name:           r.Name,
		Phones:         r.Phones,
		Emails:         r.Emails,
		Category:       r.Category,
		Notes:          r.Notes,
		ProfilePicture: r.ProfilePicture,
	}
}
