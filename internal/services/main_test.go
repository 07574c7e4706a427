package services

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactbook/engine/internal/auth"
	"github.com/contactbook/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

// tickingClock advances one second on every call.
func tickingClock(start time.Time) Clock {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func fastHasher() auth.PasswordHasher {
	return auth.NewBcryptHasher(bcrypt.MinCost)
}

func strPtr(s string) *string { return &s }

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(hash, password string) bool {
	return m.Called(hash, password).Bool(0)
}

type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) Issue(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *mockIssuer) Verify(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
