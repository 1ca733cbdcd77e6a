package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyClaimed is returned to a driver that lost a claim race.
var ErrAlreadyClaimed = fmt.Errorf("order no longer available: %w", ErrConflict)

// ErrInvalidTransition rejects a delivery status change that breaks the status order.
var ErrInvalidTransition = fmt.Errorf("invalid status transition: %w", ErrConflict)

// ErrForbidden means the caller is not the assigned driver or a conversation participant.
var ErrForbidden = errors.New("forbidden")

// ErrUnavailable marks a transient infrastructure failure; callers may retry.
var ErrUnavailable = errors.New("temporarily unavailable")

// Unavailable wraps err so that errors.Is(err, ErrUnavailable) holds.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
