package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	user := &models.User{Username: "alice", Name: "alice", PasswordHash: "x"}
	require.NoError(t, NewGormUserStore(gdb).Create(context.Background(), user))
	assert.Equal(t, uint(1), user.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := NewGormUserStore(gdb).Create(context.Background(), &models.User{Username: "alice"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByUsername(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name", "password_hash"}).
			AddRow(1, "alice", "alice", "hash"))

	user, err := NewGormUserStore(gdb).FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.PasswordHash)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserFindByUsernameMissing(t *testing.T) {
	gdb, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGormUserStore(gdb).FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
