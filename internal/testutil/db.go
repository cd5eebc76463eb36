// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"strings"
	"testing"

	"foilctf/internal/database"
	"foilctf/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same
// database and concurrent transactions serialize.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// CreateUsers inserts one user per name with generated emails and returns
// them in the same order.
func CreateUsers(t testing.TB, db *gorm.DB, names ...string) []models.User {
	t.Helper()

	users := make([]models.User, 0, len(names))
	for _, name := range names {
		email := strings.ToLower(name + "." + gofakeit.Username() + "@example.com")
		u := models.User{
			Username: name,
			Email:    &email,
			Password: gofakeit.Password(true, true, true, false, false, 16),
			Role:     models.UserRoleUser,
		}
		require.NoError(t, db.Create(&u).Error)
		users = append(users, u)
	}
	return users
}
