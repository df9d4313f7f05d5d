package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second membership for the same family).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrFamilyNotFound indicates that the requested family does not exist.
	ErrFamilyNotFound = fmt.Errorf("%w: family", ErrNotFound)

	// ErrMemberNotFound indicates that the target user holds no membership
	// row for the family.
	ErrMemberNotFound = fmt.Errorf("%w: family member", ErrNotFound)

	// ErrRecordingNotFound indicates that the requested recording does not exist.
	ErrRecordingNotFound = fmt.Errorf("%w: audio recording", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrMemberExists indicates that the user already holds a membership row
	// for the family. The composite unique key makes this the single outcome
	// of a lost race between two concurrent joins.
	ErrMemberExists = fmt.Errorf("%w: family member", ErrDuplicate)

	// ErrInviteCodeExists indicates an invite-code collision; callers
	// regenerate and retry.
	ErrInviteCodeExists = fmt.Errorf("%w: invite code", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
