package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/store"
)

// CreateMemoryParams carries the inputs for a memory upload. Recipients may
// be given explicitly; when empty, the memory fans out to every other family
// member.
type CreateMemoryParams struct {
	Title       string
	Description string
	AudioURL    string
	FileSize    int64
	MimeType    string
	Duration    *float64
	UsedVoiceID *string
	Recipients  []uuid.UUID
}

// CreateRecordingParams carries the inputs for a plain library upload with no
// sharing fan-out.
type CreateRecordingParams struct {
	Title       string
	Description string
	AudioURL    string
	FileSize    int64
	MimeType    string
	Tags        []string
	IsPublic    bool
}

// MemoryService provides the shared-memory operations: uploads with their
// per-recipient share fan-out, the shared inbox, and the plain per-family
// audio library.
type MemoryService interface {
	// CreateMemory saves the recording and one share row per recipient in a
	// single transaction. Fails with ErrNotMember unless the uploader
	// belongs to the family.
	CreateMemory(ctx context.Context, uploaderID, familyID uuid.UUID, params CreateMemoryParams) (*domain.AudioRecording, error)

	// ListSharedMemories returns recordings shared with the user by other
	// members, newest first.
	ListSharedMemories(ctx context.Context, userID uuid.UUID) ([]*domain.AudioRecording, error)

	// CreateRecording saves a library recording without sharing it.
	CreateRecording(ctx context.Context, uploaderID, familyID uuid.UUID, params CreateRecordingParams) (*domain.AudioRecording, error)

	// ListFamilyRecordings returns the family's library for a member.
	ListFamilyRecordings(ctx context.Context, familyID, requesterID uuid.UUID) ([]*domain.AudioRecording, error)
}

// memoryService is the production MemoryService backed by postgres stores.
type memoryService struct {
	db             *sql.DB
	recordingStore store.RecordingStore
	familyStore    store.FamilyStore
	logger         *slog.Logger
}

// Ensure memoryService implements MemoryService interface
var _ MemoryService = (*memoryService)(nil)

// NewMemoryService creates a MemoryService. The *sql.DB opens the transaction
// that spans the recording insert and the share fan-out.
func NewMemoryService(
	db *sql.DB,
	recordingStore store.RecordingStore,
	familyStore store.FamilyStore,
	log *slog.Logger,
) MemoryService {
	if log == nil {
		log = slog.Default()
	}

	return &memoryService{
		db:             db,
		recordingStore: recordingStore,
		familyStore:    familyStore,
		logger:         log.With(slog.String("component", "memory_service")),
	}
}

// CreateMemory implements MemoryService.CreateMemory
// The recipient set is resolved inside the transaction, so the fan-out sees
// the membership list as of the insert: either the recording plus every share
// row commit together, or nothing does.
func (s *memoryService) CreateMemory(
	ctx context.Context,
	uploaderID, familyID uuid.UUID,
	params CreateMemoryParams,
) (*domain.AudioRecording, error) {
	if err := s.requireMembership(ctx, familyID, uploaderID); err != nil {
		return nil, err
	}

	rec, err := domain.NewAudioRecording(uploaderID, familyID, params.Title, params.AudioURL)
	if err != nil {
		return nil, err
	}
	rec.Description = params.Description
	rec.FileSize = params.FileSize
	rec.MimeType = params.MimeType
	rec.Duration = params.Duration
	rec.UsedVoiceID = params.UsedVoiceID

	var shared int

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txRecordings := s.recordingStore.WithTx(tx)
		txFamilies := s.familyStore.WithTx(tx)

		if err := txRecordings.Create(ctx, rec); err != nil {
			return err
		}

		recipients := params.Recipients
		if len(recipients) == 0 {
			ids, err := txFamilies.ListMemberIDs(ctx, familyID, uploaderID)
			if err != nil {
				return err
			}
			recipients = ids
		}

		for _, recipientID := range recipients {
			share, err := domain.NewSharedAudio(rec.ID, recipientID, uploaderID)
			if err != nil {
				return err
			}

			if err := txRecordings.CreateShare(ctx, share); err != nil {
				return err
			}
		}

		shared = len(recipients)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "memory created",
		slog.String("recording_id", rec.ID.String()),
		slog.String("family_id", familyID.String()),
		slog.Int("shared_with", shared))
	return rec, nil
}

// ListSharedMemories implements MemoryService.ListSharedMemories
func (s *memoryService) ListSharedMemories(ctx context.Context, userID uuid.UUID) ([]*domain.AudioRecording, error) {
	return s.recordingStore.ListSharedWith(ctx, userID)
}

// CreateRecording implements MemoryService.CreateRecording
func (s *memoryService) CreateRecording(
	ctx context.Context,
	uploaderID, familyID uuid.UUID,
	params CreateRecordingParams,
) (*domain.AudioRecording, error) {
	if err := s.requireMembership(ctx, familyID, uploaderID); err != nil {
		return nil, err
	}

	rec, err := domain.NewAudioRecording(uploaderID, familyID, params.Title, params.AudioURL)
	if err != nil {
		return nil, err
	}
	rec.Description = params.Description
	rec.FileSize = params.FileSize
	rec.MimeType = params.MimeType
	rec.IsPublic = params.IsPublic
	if len(params.Tags) > 0 {
		rec.Tags = params.Tags
	}

	if err := s.recordingStore.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "recording created",
		slog.String("recording_id", rec.ID.String()),
		slog.String("family_id", familyID.String()))
	return rec, nil
}

// ListFamilyRecordings implements MemoryService.ListFamilyRecordings
func (s *memoryService) ListFamilyRecordings(
	ctx context.Context,
	familyID, requesterID uuid.UUID,
) ([]*domain.AudioRecording, error) {
	if err := s.requireMembership(ctx, familyID, requesterID); err != nil {
		return nil, err
	}

	return s.recordingStore.ListByFamily(ctx, familyID)
}

// requireMembership returns ErrNotMember when the user holds no membership
// row for the family.
func (s *memoryService) requireMembership(ctx context.Context, familyID, userID uuid.UUID) error {
	if _, err := s.familyStore.GetMember(ctx, familyID, userID); err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}
