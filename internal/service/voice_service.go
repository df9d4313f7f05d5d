package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/remnant-app/remnant-api/internal/store"
	"github.com/remnant-app/remnant-api/internal/voice"
)

// cloneDescription is sent to the provider alongside every voice sample.
const cloneDescription = "Voice clone for family messages"

// GenerateMessageParams carries the inputs for message generation. Exactly
// one of MessageType or CustomMessage must be set; CustomMessage wins when
// both are present.
type GenerateMessageParams struct {
	MessageType   string
	CustomMessage string
	RecipientName string
}

// GeneratedMessage is the synthesized result: the resolved text and the raw
// audio bytes with their content type.
type GeneratedMessage struct {
	Text        string
	Audio       []byte
	ContentType string
}

// VoiceService provides voice cloning and message synthesis on top of the
// configured provider.
type VoiceService interface {
	// RegisterVoice clones the user's voice from the sample and persists
	// the resulting voice ID on the user row.
	RegisterVoice(ctx context.Context, userID uuid.UUID, sample []byte, mimeType string) (string, error)

	// Presets returns the preset message catalog.
	Presets(ctx context.Context) []voice.Preset

	// GenerateMessage resolves the message text from the catalog (or uses
	// the custom text verbatim) and synthesizes it with the user's cloned
	// voice. Fails with ErrNoVoice if the user has not registered one.
	GenerateMessage(ctx context.Context, userID uuid.UUID, params GenerateMessageParams) (*GeneratedMessage, error)
}

// voiceService is the production VoiceService delegating synthesis to an
// external provider.
type voiceService struct {
	userStore   store.UserStore
	cloner      voice.Cloner
	synthesizer voice.Synthesizer
	catalog     *voice.Catalog
	logger      *slog.Logger

	// pickSample selects a template index; injectable for tests.
	pickSample func(n int) int
	// now supplies the timestamp suffix for clone names; injectable for tests.
	now func() time.Time
}

// Ensure voiceService implements VoiceService interface
var _ VoiceService = (*voiceService)(nil)

// NewVoiceService creates a VoiceService using the given provider and preset
// catalog.
func NewVoiceService(
	userStore store.UserStore,
	cloner voice.Cloner,
	synthesizer voice.Synthesizer,
	catalog *voice.Catalog,
	log *slog.Logger,
) VoiceService {
	if log == nil {
		log = slog.Default()
	}

	return &voiceService{
		userStore:   userStore,
		cloner:      cloner,
		synthesizer: synthesizer,
		catalog:     catalog,
		logger:      log.With(slog.String("component", "voice_service")),
		pickSample:  rand.Intn,
		now:         time.Now,
	}
}

// RegisterVoice implements VoiceService.RegisterVoice
// The provider-side clone is named after the user plus a millisecond
// timestamp so repeated registrations never collide.
func (s *voiceService) RegisterVoice(ctx context.Context, userID uuid.UUID, sample []byte, mimeType string) (string, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	cloneName := fmt.Sprintf("%s_%d", s.cloneBaseName(user.Name, user.Email), s.now().UnixMilli())

	voiceID, err := s.cloner.CloneVoice(ctx, cloneName, cloneDescription, sample, mimeType)
	if err != nil {
		return "", err
	}

	if err := s.userStore.SetVoice(ctx, userID, voiceID, nil); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "voice registered",
		slog.String("user_id", userID.String()),
		slog.String("voice_id", voiceID))
	return voiceID, nil
}

// Presets implements VoiceService.Presets
func (s *voiceService) Presets(_ context.Context) []voice.Preset {
	return s.catalog.Presets()
}

// GenerateMessage implements VoiceService.GenerateMessage
// Text resolution happens entirely before the provider call: an unknown
// message type never costs a synthesis request.
func (s *voiceService) GenerateMessage(
	ctx context.Context,
	userID uuid.UUID,
	params GenerateMessageParams,
) (*GeneratedMessage, error) {
	if params.MessageType == "" && strings.TrimSpace(params.CustomMessage) == "" {
		return nil, ErrMissingMessageInput
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.VoiceID == nil || *user.VoiceID == "" {
		return nil, ErrNoVoice
	}

	text := strings.TrimSpace(params.CustomMessage)
	if text == "" {
		preset, err := s.catalog.Lookup(params.MessageType)
		if err != nil {
			return nil, err
		}

		template := preset.Samples[s.pickSample(len(preset.Samples))]
		text = voice.Render(template, params.RecipientName)
	}

	audio, contentType, err := s.synthesizer.Synthesize(ctx, *user.VoiceID, text)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "message generated",
		slog.String("user_id", userID.String()),
		slog.Int("audio_bytes", len(audio)))

	return &GeneratedMessage{
		Text:        text,
		Audio:       audio,
		ContentType: contentType,
	}, nil
}

// cloneBaseName prefers the display name, falling back to the email address.
func (s *voiceService) cloneBaseName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return email
}
