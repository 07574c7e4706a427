package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/internal/repository"
	"github.com/contactbook/engine/internal/storage"
)

type mockContactRepository struct {
	mock.Mock
}

var _ repository.ContactRepository = (*mockContactRepository)(nil)

func (m *mockContactRepository) Create(ctx context.Context, obj *models.Contact) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockContactRepository) GetByID(ctx context.Context, id any, dest *models.Contact) error {
	return m.Called(ctx, id, dest).Error(0)
}

func (m *mockContactRepository) GetOwned(ctx context.Context, ownerID, id uuid.UUID, dest *models.Contact) error {
	return m.Called(ctx, ownerID, id, dest).Error(0)
}

func (m *mockContactRepository) UpdateOwned(ctx context.Context, ownerID uuid.UUID, obj *models.Contact) error {
	return m.Called(ctx, ownerID, obj).Error(0)
}

func (m *mockContactRepository) DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *mockContactRepository) List(ctx context.Context, userID uuid.UUID, f repository.ContactFilter) ([]models.Contact, error) {
	args := m.Called(ctx, userID, f)
	if v := args.Get(0); v != nil {
		return v.([]models.Contact), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContactRepository) ListForExport(ctx context.Context, userID uuid.UUID) ([]models.Contact, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]models.Contact), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContactRepository) NameExistsFold(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockContactRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContactRepository) CountByCategory(ctx context.Context, userID uuid.UUID) ([]repository.CategoryCount, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]repository.CategoryCount), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPictureStore struct {
	mock.Mock
}

func (m *mockPictureStore) Save(ctx context.Context, owner uuid.UUID, p storage.Picture) (string, error) {
	args := m.Called(ctx, owner, p)
	return args.String(0), args.Error(1)
}
