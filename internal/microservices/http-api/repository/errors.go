package repository

import (
	"errors"
	"fmt"

	"titlehub/internal/shared/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres SQLSTATE codes not already translated by gorm
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translate maps store errors onto the shared taxonomy. entity names the row kind for messages.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict(entity, "%s already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.NotFound("referenced " + entity + " parent")
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apperr.Validation(entity, "value out of range")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperr.Conflict(entity, "%s already exists", entity)
		case pgForeignKeyViolation:
			return apperr.NotFound("referenced " + entity + " parent")
		case pgCheckViolation:
			return apperr.Validation(entity, "value out of range")
		}
	}
	return fmt.Errorf("%s store: %w", entity, err)
}

// paginate returns a scope applying page-number pagination; page starts at 1.
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
