package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/crowdfund/infra/repository/model"
	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	plain := errors.New("some other error")
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "nil error returns nil", input: nil, expected: nil},
		{name: "duplicate key maps to ErrAlreadyExists", input: gorm.ErrDuplicatedKey, expected: domain.ErrAlreadyExists},
		{name: "record not found maps to ErrNotFound", input: gorm.ErrRecordNotFound, expected: domain.ErrNotFound},
		{name: "foreign key violation maps to ErrValidation", input: gorm.ErrForeignKeyViolated, expected: domain.ErrValidation},
		{name: "non-GORM error returns original", input: plain, expected: plain},
		{
			name:     "wrapped record not found maps correctly",
			input:    errors.Join(errors.New("outer error"), gorm.ErrRecordNotFound),
			expected: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				require.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	require.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrRecordNotFound }), domain.ErrNotFound)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUpsert(t *testing.T) {
	t.Parallel()

	t.Run("empty slice issues no statement", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		require.NoError(t, Upsert[model.Category](context.Background(), db, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uses on conflict update", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO "categories" .* ON CONFLICT \("id"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		rows := []model.Category{{ID: 1, Name: "Energy"}, {ID: 2, Name: "Art"}}
		require.NoError(t, Upsert(context.Background(), db, rows))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps driver errors", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO "categories"`).WillReturnError(gorm.ErrDuplicatedKey)

		err := Upsert(context.Background(), db, []model.Category{{ID: 1, Name: "Energy"}})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})
}
