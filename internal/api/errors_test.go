package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remnant-app/remnant-api/internal/api/shared"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/service"
	"github.com/remnant-app/remnant-api/internal/service/auth"
	"github.com/remnant-app/remnant-api/internal/store"
	"github.com/remnant-app/remnant-api/internal/voice"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not a member", service.ErrNotMember, http.StatusForbidden},
		{"not an admin", service.ErrNotAdmin, http.StatusForbidden},
		{"invalid invite code", service.ErrInvalidInviteCode, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"family not found", store.ErrFamilyNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"member exists", store.ErrMemberExists, http.StatusConflict},
		{"validation error", domain.NewValidationError("email", "invalid format", domain.ErrValidation), http.StatusBadRequest},
		{"empty family name", domain.ErrEmptyFamilyName, http.StatusBadRequest},
		{"empty recording title", domain.ErrEmptyRecordingTitle, http.StatusBadRequest},
		{"password too short", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"invalid path id", domain.NewValidationError("familyId", "must be a valid UUID", domain.ErrInvalidID), http.StatusBadRequest},
		{"unknown message type", voice.ErrUnknownMessageType, http.StatusBadRequest},
		{"self removal", service.ErrSelfRemoval, http.StatusBadRequest},
		{"creator cannot leave", service.ErrCreatorCannotLeave, http.StatusBadRequest},
		{"no cloned voice", service.ErrNoVoice, http.StatusBadRequest},
		{"missing message input", service.ErrMissingMessageInput, http.StatusBadRequest},
		{"provider failure", voice.ErrUpstream, http.StatusInternalServerError},
		{"unknown error", errors.New("something exploded"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("joining: %w", service.ErrNotMember), http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"expired token", auth.ErrExpiredToken, shared.CodeUnauthorized},
		{"not a member", service.ErrNotMember, shared.CodeForbidden},
		{"recording not found", store.ErrRecordingNotFound, shared.CodeNotFound},
		{"email exists", store.ErrEmailExists, shared.CodeConflict},
		{"self removal", service.ErrSelfRemoval, shared.CodeInvalidOperation},
		{"creator cannot leave", service.ErrCreatorCannotLeave, shared.CodeInvalidOperation},
		{"no cloned voice", service.ErrNoVoice, shared.CodeValidationError},
		{"empty family name", domain.ErrEmptyFamilyName, shared.CodeValidationError},
		{"unknown message type", voice.ErrUnknownMessageType, shared.CodeValidationError},
		{"provider failure", voice.ErrUpstream, shared.CodeUpstreamError},
		{"unknown error", errors.New("boom"), shared.CodeInternalError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantCode, MapErrorToCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"wrong token type", auth.ErrWrongTokenType, "Invalid refresh token"},
		{"not a member", service.ErrNotMember, "You are not a member of this family"},
		{"invalid invite code", service.ErrInvalidInviteCode, "Invalid invite code"},
		{"family not found", store.ErrFamilyNotFound, "Family not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"member exists", store.ErrMemberExists, "Already a member of this family"},
		{"creator cannot leave", service.ErrCreatorCannotLeave, "Transfer ownership before leaving the family"},
		{"no cloned voice", service.ErrNoVoice, "No voice registered for this account"},
		{"provider failure", voice.ErrUpstream, "Voice provider request failed"},
		{"database details hidden", errors.New(`pq: connection to "postgres://user:secret@db" failed`), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantMsg, GetSafeErrorMessage(tc.err))
		})
	}

	t.Run("validation error includes field and message", func(t *testing.T) {
		t.Parallel()
		err := domain.NewValidationError("invite_code", "must be 8 characters", domain.ErrValidation)
		assert.Equal(t, "Invalid invite_code: must be 8 characters", GetSafeErrorMessage(err))
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errMsg  string
		wantMsg string
	}{
		{
			name:    "required field",
			errMsg:  "Key: 'RegisterRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
			wantMsg: "Invalid Email: required field",
		},
		{
			name:    "email format",
			errMsg:  "Key: 'RegisterRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag",
			wantMsg: "Invalid Email: invalid email format",
		},
		{
			name:    "min length",
			errMsg:  "Key: 'RegisterRequest.Password' Error:Field validation for 'Password' failed on the 'min' tag",
			wantMsg: "Invalid Password: too short",
		},
		{
			name:    "unrecognized error shape",
			errMsg:  "some internal database error with connection details",
			wantMsg: "Validation error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantMsg, SanitizeValidationError(errors.New(tc.errMsg)))
		})
	}
}
