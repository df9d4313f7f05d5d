package api

import (
	"github.com/google/uuid"

	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/voice"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"required,max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Success bool `json:"success"`

	// User is a summary of the authenticated account
	User domain.UserSummary `json:"user"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateFamilyRequest defines the payload for family creation.
type CreateFamilyRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// FamilyResponse wraps a single family.
type FamilyResponse struct {
	Success bool        `json:"success"`
	Family  interface{} `json:"family"`
}

// FamilyListResponse wraps the caller's families.
type FamilyListResponse struct {
	Success  bool        `json:"success"`
	Families interface{} `json:"families"`
}

// JoinFamilyRequest defines the payload for joining a family.
type JoinFamilyRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=8"`
}

// MemberListResponse wraps a family's member list.
type MemberListResponse struct {
	Success bool                  `json:"success"`
	Members []domain.FamilyMember `json:"members"`
}

// LeaveFamilyResponse reports whether leaving deleted the family outright.
type LeaveFamilyResponse struct {
	Success       bool `json:"success"`
	FamilyDeleted bool `json:"family_deleted"`
}

// MessageResponse is a generic success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateMemoryRequest defines the payload for a memory upload with fan-out.
type CreateMemoryRequest struct {
	FamilyID    uuid.UUID   `json:"family_id"    validate:"required"`
	Title       string      `json:"title"        validate:"required,max=200"`
	Description string      `json:"description"  validate:"max=1000"`
	AudioURL    string      `json:"audio_url"    validate:"required,url"`
	FileSize    int64       `json:"file_size"    validate:"min=0"`
	MimeType    string      `json:"mime_type"`
	Duration    *float64    `json:"duration,omitempty"`
	UsedVoiceID *string     `json:"used_voice_id,omitempty"`
	Recipients  []uuid.UUID `json:"recipients,omitempty"`
}

// RecordingResponse wraps a single recording.
type RecordingResponse struct {
	Success   bool                   `json:"success"`
	Recording *domain.AudioRecording `json:"recording"`
}

// RecordingListResponse wraps a list of recordings.
type RecordingListResponse struct {
	Success    bool                     `json:"success"`
	Recordings []*domain.AudioRecording `json:"recordings"`
}

// CreateRecordingRequest defines the payload for a plain library upload.
type CreateRecordingRequest struct {
	FamilyID    uuid.UUID `json:"family_id"   validate:"required"`
	Title       string    `json:"title"       validate:"required,max=200"`
	Description string    `json:"description" validate:"max=1000"`
	AudioURL    string    `json:"audio_url"   validate:"required,url"`
	FileSize    int64     `json:"file_size"   validate:"min=0"`
	MimeType    string    `json:"mime_type"`
	Tags        []string  `json:"tags,omitempty"`
	IsPublic    bool      `json:"is_public"`
}

// RegisterVoiceResponse reports the provider-side voice handle.
type RegisterVoiceResponse struct {
	Success bool   `json:"success"`
	VoiceID string `json:"voice_id"`
}

// PresetCatalogResponse wraps the preset message catalog.
type PresetCatalogResponse struct {
	Success bool           `json:"success"`
	Presets []voice.Preset `json:"presets"`
}

// GenerateMessageRequest defines the payload for message synthesis. One of
// MessageType or CustomMessage must be present.
type GenerateMessageRequest struct {
	MessageType   string `json:"message_type,omitempty"`
	CustomMessage string `json:"custom_message,omitempty" validate:"max=1000"`
	RecipientName string `json:"recipient_name,omitempty" validate:"max=100"`
}

// GenerateMessageResponse carries the resolved text and base64 audio.
type GenerateMessageResponse struct {
	Success     bool   `json:"success"`
	Text        string `json:"text"`
	Audio       string `json:"audio"`
	ContentType string `json:"content_type"`
}
