package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"foilctf/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestJoinRequestCreate_PostgresUniqueViolationIsConflict(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewJoinRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "team_join_requests"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "team_join_requests_pkey"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), "red", "carol")

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "Request already sent", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendCreate_PostgresOtherErrorIsInternal(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := NewFriendRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "friends"`)).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "chk_friends_not_self"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), "alice", "alice")
	assert.True(t, models.IsCode(err, models.CodeInternal), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: teams.name")))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}
