package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 200

// MapGormErrorToDomain converts GORM errors to domain errors.
// Traverses the error chain to find GORM errors and maps them to appropriate domain errors.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		case errors.Is(currentErr, gorm.ErrForeignKeyViolated),
			errors.Is(currentErr, gorm.ErrCheckConstraintViolated):
			return errors.Join(domain.ErrValidation, err)
		}

		currentErr = errors.Unwrap(currentErr)
	}

	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(m).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// Upsert inserts rows, replacing every column of an existing row with the
// same primary key. Rows are written in batches; an empty slice is a no-op.
func Upsert[T any](ctx context.Context, db *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return WrapError(func() error {
		return db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			CreateInBatches(&rows, upsertBatchSize).Error
	})
}
