package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// codeErrors maps SQLSTATE codes to domain errors.
var codeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"40001": domain.ErrConflict,      // serialization_failure
	"40P01": domain.ErrConflict,      // deadlock_detected
}

// constraintFields names the request field behind constraints that only a
// bad client value can violate.
var constraintFields = map[string]domain.FieldError{
	"items_category_id_fkey": {Field: "category_id", Message: "unknown category"},
}

// MapError converts pgx errors to domain errors for entity id. Errors it does
// not know, context errors included, keep their identity.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if fe, ok := constraintFields[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%s %s: %w", entity, id, domain.NewValidationError(fe.Field, fe.Message))
		}
		if mapped, ok := codeErrors[pgErr.Code]; ok {
			return fmt.Errorf("%s %s: %w", entity, id, mapped)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
