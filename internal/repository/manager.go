package repository

import (
	"context"

	"gorm.io/gorm"
)

// Manager hands out repositories bound to one connection or transaction.
type Manager interface {
	Users() UserRepository
	Categories() CategoryRepository
	Contacts() ContactRepository
	// InTx runs fn against repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(m Manager) error) error
}

type gormManager struct {
	db         *gorm.DB
	users      UserRepository
	categories CategoryRepository
	contacts   ContactRepository
}

func NewManager(db *gorm.DB) Manager {
	return &gormManager{
		db:         db,
		users:      NewUserRepository(db),
		categories: NewCategoryRepository(db),
		contacts:   NewContactRepository(db),
	}
}

func (m *gormManager) Users() UserRepository { return m.users }
func (m *gormManager) Categories() CategoryRepository { return m.categories }
func (m *gormManager) Contacts() ContactRepository { return m.contacts }

func (m *gormManager) InTx(ctx context.Context, fn func(m Manager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewManager(tx))
	})
}
