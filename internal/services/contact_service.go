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
	"github.com/contactbook/engine/pkg/utils"
)

// ContactDraft is the payload of a new contact. Nil Category and Notes fall
// back to their defaults.
type ContactDraft struct {
	Name           string                `json:"name"`
	Phones         []models.Phone        `json:"phones"`
	Emails         []models.EmailAddress `json:"emails"`
	Category       *string               `json:"category"`
	Notes          *string               `json:"notes"`
	ProfilePicture *string               `json:"profile_picture"`
}

// ContactPatch is a partial update. Fields present in the document replace
// the stored value, including an explicit null.
type ContactPatch struct {
	Name           utils.Optional[string]                `json:"name"`
	Phones         utils.Optional[[]models.Phone]        `json:"phones"`
	Emails         utils.Optional[[]models.EmailAddress] `json:"emails"`
	Category       utils.Optional[string]                `json:"category"`
	Notes          utils.Optional[string]                `json:"notes"`
	ProfilePicture utils.Optional[*string]               `json:"profile_picture"`
}

// ContactQuery selects and orders a listing. SortBy defaults to name.
type ContactQuery struct {
	Search   string
	Category string
	SortBy   string
}

type ContactService interface {
	Create(ctx context.Context, userID uuid.UUID, draft ContactDraft) (*models.Contact, error)
	Get(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error)
	List(ctx context.Context, userID uuid.UUID, q ContactQuery) ([]models.Contact, error)
	Update(ctx context.Context, userID, contactID uuid.UUID, patch ContactPatch) (*models.Contact, error)
	Delete(ctx context.Context, userID, contactID uuid.UUID) error
}

type contactService struct {
	contacts repository.ContactRepository
	now      Clock
}

func NewContactService(contacts repository.ContactRepository, now Clock) ContactService {
	if now == nil {
		now = SystemClock
	}
	return &contactService{contacts: contacts, now: now}
}

var _ ContactService = (*contactService)(nil)

func (s *contactService) Create(ctx context.Context, userID uuid.UUID, draft ContactDraft) (*models.Contact, error) {
	c, err := newContact(userID, draft, s.now())
	if err != nil {
		return nil, err
	}

	exists, err := s.contacts.NameExistsFold(ctx, userID, c.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErr.New(appErr.CodeDuplicateContact, "contact with this name already exists")
	}

	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.L().Info("contact created", logger.UserID(userID), zap.Stringer("contact_id", c.ID))
	return c, nil
}

func (s *contactService) Get(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error) {
	var c models.Contact
	if err := s.contacts.GetOwned(ctx, userID, contactID, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *contactService) List(ctx context.Context, userID uuid.UUID, q ContactQuery) ([]models.Contact, error) {
	sort := repository.SortByName
	if q.SortBy != "" {
		sort = repository.ContactSort(q.SortBy)
	}
	if !sort.Valid() {
		return nil, appErr.Newf(appErr.CodeInvalid, "sort_by must be one of name, created_at, updated_at; got %q", q.SortBy)
	}
	return s.contacts.List(ctx, userID, repository.ContactFilter{
		Search:   q.Search,
		Category: q.Category,
		SortBy:   sort,
	})
}

// Update applies patch and always advances updated_at, even when the patch
// is empty. Names are not re-checked for duplicates.
func (s *contactService) Update(ctx context.Context, userID, contactID uuid.UUID, patch ContactPatch) (*models.Contact, error) {
	var c models.Contact
	if err := s.contacts.GetOwned(ctx, userID, contactID, &c); err != nil {
		return nil, err
	}
	if err := patch.apply(&c); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now()

	if err := s.contacts.UpdateOwned(ctx, userID, &c); err != nil {
		return nil, err
	}
	logger.L().Info("contact updated", logger.UserID(userID), zap.Stringer("contact_id", contactID))
	return &c, nil
}

func (s *contactService) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	if err := s.contacts.DeleteOwned(ctx, userID, contactID); err != nil {
		return err
	}
	logger.L().Info("contact deleted", logger.UserID(userID), zap.Stringer("contact_id", contactID))
	return nil
}

// newContact validates a draft and fills in defaults.
func newContact(userID uuid.UUID, d ContactDraft, at time.Time) (*models.Contact, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, appErr.New(appErr.CodeInvalid, "name cannot be empty")
	}
	if err := checkEmails(d.Emails); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, err.Error())
	}

	c := &models.Contact{
		UserID:         userID,
		Name:           name,
		Phones:         orEmpty(d.Phones),
		Emails:         orEmpty(d.Emails),
		Category:       models.DefaultCategory,
		ProfilePicture: d.ProfilePicture,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
	if d.Category != nil {
		c.Category = *d.Category
	}
	if d.Notes != nil {
		c.Notes = *d.Notes
	}
	return c, nil
}

func (p ContactPatch) apply(c *models.Contact) error {
	if p.Name.Set {
		name := strings.TrimSpace(p.Name.Value)
		if name == "" {
			return appErr.New(appErr.CodeInvalid, "name cannot be empty")
		}
		c.Name = name
	}
	if p.Phones.Set {
		c.Phones = orEmpty(p.Phones.Value)
	}
	if p.Emails.Set {
		if err := checkEmails(p.Emails.Value); err != nil {
			return appErr.Wrap(err, appErr.CodeInvalid, err.Error())
		}
		c.Emails = orEmpty(p.Emails.Value)
	}
	if p.Category.Set {
		c.Category = p.Category.Value
	}
	if p.Notes.Set {
		c.Notes = p.Notes.Value
	}
	if p.ProfilePicture.Set {
		c.ProfilePicture = p.ProfilePicture.Value
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
