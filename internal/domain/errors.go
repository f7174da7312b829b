package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for roster operations. Controllers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("activity not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrHistoryUnavailable is returned when no roster audit store is configured.
	ErrHistoryUnavailable = errors.New("roster history is not enabled")

	ErrAlreadySignedUp = errors.New("student is already signed up for this activity")
	ErrActivityFull    = errors.New("activity is full")

	// ErrNotSignedUp is reported as not found: the participant does not exist on the roster.
	ErrNotSignedUp = fmt.Errorf("student is not signed up for this activity: %w", errNotFoundKind)
)

var errNotFoundKind = errors.New("not found")

// IsNotFound reports whether err names a missing activity or a missing participant.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, errNotFoundKind)
}

// IsConflict reports whether err is a rejected signup (duplicate or full).
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadySignedUp) || errors.Is(err, ErrActivityFull)
}
