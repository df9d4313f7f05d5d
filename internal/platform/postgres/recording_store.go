package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/platform/logger"
	"github.com/remnant-app/remnant-api/internal/store"
)

// RecordingStore implements the store.RecordingStore interface using a
// PostgreSQL database as the storage backend.
type RecordingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRecordingStore creates a new PostgreSQL implementation of the
// RecordingStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger is used.
func NewRecordingStore(db store.DBTX, log *slog.Logger) *RecordingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &RecordingStore{
		db:     db,
		logger: log.With(slog.String("component", "recording_store")),
	}
}

// Ensure RecordingStore implements store.RecordingStore interface
var _ store.RecordingStore = (*RecordingStore)(nil)

// Create implements store.RecordingStore.Create
// Returns store.ErrInvalidEntity if the uploader or family does not exist.
func (s *RecordingStore) Create(ctx context.Context, rec *domain.AudioRecording) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rec.Validate(); err != nil {
		log.Warn("recording validation failed during create",
			slog.String("error", err.Error()),
			slog.String("recording_id", rec.ID.String()))
		return err
	}

	query := `
		INSERT INTO audio_recordings
			(id, title, description, audio_url, file_size, mime_type, tags,
			 is_public, duration, used_voice_id, uploaded_by, family_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Title,
		rec.Description,
		rec.AudioURL,
		rec.FileSize,
		rec.MimeType,
		pq.Array(rec.Tags),
		rec.IsPublic,
		rec.Duration,
		rec.UsedVoiceID,
		rec.UploadedByID,
		rec.FamilyID,
		rec.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create recording",
			slog.String("error", err.Error()),
			slog.String("recording_id", rec.ID.String()),
			slog.String("family_id", rec.FamilyID.String()))
		return mapError(err)
	}

	log.Info("recording created",
		slog.String("recording_id", rec.ID.String()),
		slog.String("uploaded_by", rec.UploadedByID.String()),
		slog.String("family_id", rec.FamilyID.String()))
	return nil
}

// CreateShare implements store.RecordingStore.CreateShare
// Returns store.ErrInvalidEntity if the recording or recipient does not exist.
func (s *RecordingStore) CreateShare(ctx context.Context, share *domain.SharedAudio) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := share.Validate(); err != nil {
		log.Warn("share validation failed during create",
			slog.String("error", err.Error()),
			slog.String("audio_id", share.AudioID.String()))
		return err
	}

	query := `
		INSERT INTO shared_audio (id, audio_id, shared_with, shared_by, can_download, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		share.ID,
		share.AudioID,
		share.SharedWithID,
		share.SharedByID,
		share.CanDownload,
		share.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create share",
			slog.String("error", err.Error()),
			slog.String("audio_id", share.AudioID.String()),
			slog.String("shared_with", share.SharedWithID.String()))
		return mapError(err)
	}

	return nil
}

// ListSharedWith implements store.RecordingStore.ListSharedWith
// Self-uploaded recordings are excluded even when a share row targets the
// uploader, so the "shared with me" view only ever shows other members' work.
func (s *RecordingStore) ListSharedWith(ctx context.Context, userID uuid.UUID) ([]*domain.AudioRecording, error) {
	query := `
		SELECT DISTINCT r.id, r.title, r.description, r.audio_url, r.file_size,
		       r.mime_type, r.tags, r.is_public, r.duration, r.used_voice_id,
		       r.uploaded_by, r.family_id, r.created_at,
		       u.id, u.name, u.email,
		       f.id, f.name
		FROM audio_recordings r
		JOIN shared_audio sa ON sa.audio_id = r.id AND sa.shared_with = $1
		JOIN users u ON u.id = r.uploaded_by
		JOIN families f ON f.id = r.family_id
		WHERE r.uploaded_by <> $1
		ORDER BY r.created_at DESC
	`

	return s.queryRecordings(ctx, query, userID)
}

// ListByFamily implements store.RecordingStore.ListByFamily
func (s *RecordingStore) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*domain.AudioRecording, error) {
	query := `
		SELECT r.id, r.title, r.description, r.audio_url, r.file_size,
		       r.mime_type, r.tags, r.is_public, r.duration, r.used_voice_id,
		       r.uploaded_by, r.family_id, r.created_at,
		       u.id, u.name, u.email,
		       f.id, f.name
		FROM audio_recordings r
		JOIN users u ON u.id = r.uploaded_by
		JOIN families f ON f.id = r.family_id
		WHERE r.family_id = $1
		ORDER BY r.created_at DESC
	`

	return s.queryRecordings(ctx, query, familyID)
}

// WithTx implements store.RecordingStore.WithTx
func (s *RecordingStore) WithTx(tx *sql.Tx) store.RecordingStore {
	return &RecordingStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryRecordings runs a recording query that joins uploader and family
// summaries and maps the rows.
func (s *RecordingStore) queryRecordings(ctx context.Context, query string, arg any) ([]*domain.AudioRecording, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var recordings []*domain.AudioRecording
	for rows.Next() {
		var rec domain.AudioRecording
		var uploader domain.UserSummary
		var family domain.FamilySummary

		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.Description,
			&rec.AudioURL,
			&rec.FileSize,
			&rec.MimeType,
			pq.Array(&rec.Tags),
			&rec.IsPublic,
			&rec.Duration,
			&rec.UsedVoiceID,
			&rec.UploadedByID,
			&rec.FamilyID,
			&rec.CreatedAt,
			&uploader.ID,
			&uploader.Name,
			&uploader.Email,
			&family.ID,
			&family.Name,
		)
		if err != nil {
			return nil, mapError(err)
		}

		rec.UploadedBy = &uploader
		rec.Family = &family
		if rec.Tags == nil {
			rec.Tags = []string{}
		}
		recordings = append(recordings, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return recordings, nil
}
