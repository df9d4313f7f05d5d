package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for AudioRecording and SharedAudio.
var (
	ErrEmptyRecordingID    = fmt.Errorf("%w: recording ID cannot be empty", ErrValidation)
	ErrEmptyRecordingTitle = fmt.Errorf("%w: recording title cannot be empty", ErrValidation)
	ErrEmptyAudioURL       = fmt.Errorf("%w: audio URL cannot be empty", ErrValidation)
	ErrEmptyUploaderID     = fmt.Errorf("%w: uploader ID cannot be empty", ErrValidation)
	ErrEmptyShareTarget    = fmt.Errorf("%w: share target user ID cannot be empty", ErrValidation)
)

// AudioRecording is an audio artifact owned by its uploader and scoped to one
// family. A recording created through the generation flow and fanned out to
// family members is called a "memory". Recordings are never updated in place.
type AudioRecording struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	AudioURL     string    `json:"audio_url"`
	FileSize     int64     `json:"file_size,omitempty"`
	MimeType     string    `json:"mime_type,omitempty"`
	Tags         []string  `json:"tags"`
	IsPublic     bool      `json:"is_public"`
	Duration     *float64  `json:"duration,omitempty"`
	UsedVoiceID  *string   `json:"used_voice_id,omitempty"`
	UploadedByID uuid.UUID `json:"uploaded_by_id"`
	FamilyID     uuid.UUID `json:"family_id"`
	CreatedAt    time.Time `json:"created_at"`

	// UploadedBy and Family are summary projections populated by joined
	// queries; nil when not requested.
	UploadedBy *UserSummary   `json:"uploaded_by,omitempty"`
	Family     *FamilySummary `json:"family,omitempty"`
}

// FamilySummary is the minimal family projection embedded in recording views.
type FamilySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SharedAudio records that a recording was shared with a specific user.
// Rows are created at memory-creation time: the recipient set is a snapshot
// of the membership at that moment, not a dynamic relationship.
type SharedAudio struct {
	ID           uuid.UUID `json:"id"`
	AudioID      uuid.UUID `json:"audio_id"`
	SharedWithID uuid.UUID `json:"shared_with_id"`
	SharedByID   uuid.UUID `json:"shared_by_id"`
	CanDownload  bool      `json:"can_download"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAudioRecording creates a recording owned by uploaderID in familyID.
// Tags default to an empty slice so the column never stores NULL.
func NewAudioRecording(uploaderID, familyID uuid.UUID, title, audioURL string) (*AudioRecording, error) {
	rec := &AudioRecording{
		ID:          uuid.New(),
		Title:       title,
		AudioURL:    audioURL,
		Tags:        []string{},
		UploadedByID: uploaderID,
		FamilyID:    familyID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the AudioRecording has valid data.
func (r *AudioRecording) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyRecordingID
	}

	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyRecordingTitle
	}

	if r.AudioURL == "" {
		return ErrEmptyAudioURL
	}

	if r.UploadedByID == uuid.Nil {
		return ErrEmptyUploaderID
	}

	if r.FamilyID == uuid.Nil {
		return ErrEmptyFamilyID
	}

	return nil
}

// NewSharedAudio creates a share row granting recipientID access to audioID.
// Shares created by the fan-out always allow download.
func NewSharedAudio(audioID, recipientID, sharerID uuid.UUID) (*SharedAudio, error) {
	share := &SharedAudio{
		ID:           uuid.New(),
		AudioID:      audioID,
		SharedWithID: recipientID,
		SharedByID:   sharerID,
		CanDownload:  true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := share.Validate(); err != nil {
		return nil, err
	}

	return share, nil
}

// Validate checks if the SharedAudio has valid data.
func (s *SharedAudio) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyRecordingID
	}

	if s.AudioID == uuid.Nil {
		return ErrEmptyRecordingID
	}

	if s.SharedWithID == uuid.Nil {
		return ErrEmptyShareTarget
	}

	if s.SharedByID == uuid.Nil {
		return ErrEmptyUserID
	}

	return nil
}
