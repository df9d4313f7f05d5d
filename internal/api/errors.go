package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/remnant-app/remnant-api/internal/api/shared"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/service"
	"github.com/remnant-app/remnant-api/internal/service/auth"
	"github.com/remnant-app/remnant-api/internal/store"
	"github.com/remnant-app/remnant-api/internal/voice"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrInvalidInviteCode):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, voice.ErrUnknownMessageType),
		errors.Is(err, service.ErrSelfRemoval),
		errors.Is(err, service.ErrCreatorCannotLeave),
		errors.Is(err, service.ErrNoVoice),
		errors.Is(err, service.ErrMissingMessageInput):
		return http.StatusBadRequest

	// Default: internal server error. Provider failures surface here too;
	// the upstream status is preserved in the logs only.
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToCode maps internal errors to the stable error codes carried in
// response bodies.
func MapErrorToCode(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return shared.CodeUnauthorized

	case errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrInvalidInviteCode):
		return shared.CodeForbidden

	case errors.Is(err, store.ErrNotFound):
		return shared.CodeNotFound

	case errors.Is(err, store.ErrDuplicate):
		return shared.CodeConflict

	case errors.Is(err, service.ErrSelfRemoval),
		errors.Is(err, service.ErrCreatorCannotLeave):
		return shared.CodeInvalidOperation

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, voice.ErrUnknownMessageType),
		errors.Is(err, service.ErrNoVoice),
		errors.Is(err, service.ErrMissingMessageInput):
		return shared.CodeValidationError

	case errors.Is(err, voice.ErrUpstream):
		return shared.CodeUpstreamError

	default:
		return shared.CodeInternalError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	// Authorization errors
	case errors.Is(err, service.ErrNotMember):
		return "You are not a member of this family"

	case errors.Is(err, service.ErrNotAdmin):
		return "Only family admins can do this"

	case errors.Is(err, service.ErrInvalidInviteCode):
		return "Invalid invite code"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrFamilyNotFound):
		return "Family not found"

	case errors.Is(err, store.ErrMemberNotFound):
		return "Member not found"

	case errors.Is(err, store.ErrRecordingNotFound):
		return "Recording not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrMemberExists):
		return "Already a member of this family"

	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	// Invalid operations
	case errors.Is(err, service.ErrSelfRemoval):
		return "Admins cannot remove themselves"

	case errors.Is(err, service.ErrCreatorCannotLeave):
		return "Transfer ownership before leaving the family"

	// Bad request errors
	case errors.Is(err, service.ErrNoVoice):
		return "No voice registered for this account"

	case errors.Is(err, service.ErrMissingMessageInput):
		return "A message type or custom message is required"

	case errors.Is(err, voice.ErrUnknownMessageType):
		return "Unknown message type"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidID):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return "Validation error"

	// Provider failures
	case errors.Is(err, voice.ErrUpstream):
		return "Voice provider request failed"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status, code, and safe message and writes the
// response. An empty userMessage falls back to the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	code := MapErrorToCode(err)

	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}

	shared.RespondWithErrorAndLog(w, r, status, userMessage, code, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email'
	// failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
