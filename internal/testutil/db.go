// Package testutil provides a throwaway SQLite database with the service
// schema, for repository, service and router tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/pkg/database"
	"github.com/contactbook/engine/pkg/logger"
)

var seq atomic.Int64

// NewDB opens a private in-memory SQLite database migrated with the models.
// A nop logger is installed if none is.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	ensureLogger()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=1", seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(gormlogger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// One connection keeps the shared in-memory database alive and avoids
	// table locks between pooled connections.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Contact{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// NewUser inserts a user directly and returns it.
func NewUser(t testing.TB, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Name: email, PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func ensureLogger() {
	defer func() {
		if recover() != nil {
			logger.InitNop()
		}
	}()
	_ = logger.L()
}
