package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"food-delivery-dispatch/internal/apperr"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTransient reports errors a caller may retry: lost connections, timeouts,
// serialization failures and deadlocks.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		switch {
		case len(pgerr.Code) == 5 && pgerr.Code[:2] == "08":
			return true
		case pgerr.Code == "40001", pgerr.Code == "40P01", pgerr.Code == "57P01", pgerr.Code == "53300":
			return true
		}
	}
	return pgconn.SafeToRetry(err)
}

// classify marks transient store failures as apperr.ErrUnavailable.
func classify(err error) error {
	if IsTransient(err) {
		return apperr.Unavailable(err)
	}
	return err
}
