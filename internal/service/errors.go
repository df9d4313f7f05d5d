// Package service provides application-level services for managing families,
// memberships, recordings, and voice-message generation.
package service

import "errors"

// Common service errors - sentinel errors used across service
// implementations. Callers check for them with errors.Is(); the API layer
// maps them to HTTP status codes.
var (
	// ErrNotMember indicates the requesting user has no membership row for
	// the family. API layer maps this to HTTP 403 Forbidden.
	ErrNotMember = errors.New("not a member of this family")

	// ErrNotAdmin indicates the requesting user's membership lacks the
	// ADMIN role. API layer maps this to HTTP 403 Forbidden.
	ErrNotAdmin = errors.New("only admins can perform this operation")

	// ErrInvalidInviteCode indicates the supplied invite code does not
	// match the family's stored code. API layer maps this to HTTP 403
	// Forbidden.
	ErrInvalidInviteCode = errors.New("invalid invite code")

	// ErrSelfRemoval indicates an admin tried to remove themselves through
	// the member-removal path; self-removal must use the leave flow.
	// API layer maps this to HTTP 400.
	ErrSelfRemoval = errors.New("use the leave family endpoint to remove yourself")

	// ErrCreatorCannotLeave indicates the family creator tried to leave
	// while other members remain. Ownership transfer is not modeled, so
	// the operation is rejected and state is unchanged. API layer maps
	// this to HTTP 400.
	ErrCreatorCannotLeave = errors.New(
		"cannot leave family as creator while other members exist; transfer ownership first")

	// ErrNoVoice indicates the user has no cloned voice registered yet.
	// API layer maps this to HTTP 400.
	ErrNoVoice = errors.New("no cloned voice registered for user")

	// ErrMissingMessageInput indicates that neither a message type nor a
	// custom message was provided. API layer maps this to HTTP 400.
	ErrMissingMessageInput = errors.New("either message type or custom message is required")
)
