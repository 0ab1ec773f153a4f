package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &DB{Pool: mock}, mock
}

func TestDB_Migrate(t *testing.T) {
	db, mock := setupDB(t)

	for range migrations {
		mock.ExpectExec(`.+`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}

	err := db.Migrate(context.Background())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Migrate_StopsOnFailure(t *testing.T) {
	db, mock := setupDB(t)

	mock.ExpectExec(`CREATE EXTENSION`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS products`).WillReturnError(errors.New("permission denied"))

	err := db.Migrate(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 2 failed")
	assert.Contains(t, err.Error(), "permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Ping(t *testing.T) {
	db, mock := setupDB(t)

	mock.ExpectPing()
	require.NoError(t, db.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, db.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), "postgres://%zz")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse database url")
}
