package api

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/remnant-app/remnant-api/internal/api/shared"
	"github.com/remnant-app/remnant-api/internal/service"
)

// maxVoiceSampleBytes caps the uploaded voice sample size.
const maxVoiceSampleBytes = 10 << 20 // 10 MiB

// VoiceHandler handles voice cloning and message synthesis API requests.
type VoiceHandler struct {
	voiceService service.VoiceService
	validator    *validator.Validate
}

// NewVoiceHandler creates a new VoiceHandler with the given dependencies.
func NewVoiceHandler(voiceService service.VoiceService) *VoiceHandler {
	return &VoiceHandler{
		voiceService: voiceService,
		validator:    validator.New(),
	}
}

// RegisterVoice handles POST /voice/save: a multipart upload with the voice
// sample in the "audioFile" field.
func (h *VoiceHandler) RegisterVoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxVoiceSampleBytes); err != nil {
		shared.RespondWithError(
			w, r, http.StatusBadRequest, "Invalid multipart form", shared.CodeValidationError)
		return
	}

	file, header, err := r.FormFile("audioFile")
	if err != nil {
		shared.RespondWithError(
			w, r, http.StatusBadRequest, "Audio file is required", shared.CodeValidationError)
		return
	}
	defer func() { _ = file.Close() }()

	sample, err := io.ReadAll(io.LimitReader(file, maxVoiceSampleBytes))
	if err != nil {
		shared.RespondWithError(
			w, r, http.StatusBadRequest, "Failed to read audio file", shared.CodeValidationError)
		return
	}

	if len(sample) == 0 {
		shared.RespondWithError(
			w, r, http.StatusBadRequest, "Audio file is empty", shared.CodeValidationError)
		return
	}

	mimeType := header.Header.Get("Content-Type")

	voiceID, err := h.voiceService.RegisterVoice(r.Context(), userID, sample, mimeType)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RegisterVoiceResponse{
		Success: true,
		VoiceID: voiceID,
	})
}

// GetPresets handles GET /voice/generate: the preset message catalog.
func (h *VoiceHandler) GetPresets(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PresetCatalogResponse{
		Success: true,
		Presets: h.voiceService.Presets(r.Context()),
	})
}

// GenerateMessage handles POST /voice/generate: resolves the message text and
// synthesizes it with the caller's cloned voice. The audio comes back base64
// encoded.
func (h *VoiceHandler) GenerateMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req GenerateMessageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(
			w, r, http.StatusBadRequest, "Invalid request format", shared.CodeValidationError)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(
			w, r, http.StatusBadRequest, SanitizeValidationError(err), shared.CodeValidationError)
		return
	}

	msg, err := h.voiceService.GenerateMessage(r.Context(), userID, service.GenerateMessageParams{
		MessageType:   req.MessageType,
		CustomMessage: req.CustomMessage,
		RecipientName: req.RecipientName,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateMessageResponse{
		Success:     true,
		Text:        msg.Text,
		Audio:       base64.StdEncoding.EncodeToString(msg.Audio),
		ContentType: msg.ContentType,
	})
}
