package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/remnant-app/remnant-api/internal/domain"
)

// RecordingStore defines the interface for audio recording and share
// persistence. Recordings are insert-only; there is no update path.
type RecordingStore interface {
	// Create saves a new audio recording.
	// Returns ErrInvalidEntity if the uploader or family does not exist.
	Create(ctx context.Context, rec *domain.AudioRecording) error

	// CreateShare saves a share row targeting a single recipient.
	// Returns ErrInvalidEntity if the recording or recipient does not exist.
	CreateShare(ctx context.Context, share *domain.SharedAudio) error

	// ListSharedWith returns recordings shared with the user, excluding the
	// user's own uploads, newest first, with uploader and family summaries.
	ListSharedWith(ctx context.Context, userID uuid.UUID) ([]*domain.AudioRecording, error)

	// ListByFamily returns all of the family's recordings newest first,
	// with uploader summaries.
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*domain.AudioRecording, error)

	// WithTx returns a new RecordingStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) RecordingStore
}
