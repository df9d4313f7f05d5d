package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/remnant-app/remnant-api/internal/api/shared"
	"github.com/remnant-app/remnant-api/internal/service"
)

// MemoryHandler handles shared-memory and audio-library API requests.
type MemoryHandler struct {
	memoryService service.MemoryService
	validator     *validator.Validate
}

// NewMemoryHandler creates a new MemoryHandler with the given dependencies.
func NewMemoryHandler(memoryService service.MemoryService) *MemoryHandler {
	return &MemoryHandler{
		memoryService: memoryService,
		validator:     validator.New(),
	}
}

// CreateMemory handles POST /memories: the upload plus its share fan-out.
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateMemoryRequest
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

	rec, err := h.memoryService.CreateMemory(r.Context(), userID, req.FamilyID, service.CreateMemoryParams{
		Title:       req.Title,
		Description: req.Description,
		AudioURL:    req.AudioURL,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		Duration:    req.Duration,
		UsedVoiceID: req.UsedVoiceID,
		Recipients:  req.Recipients,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RecordingResponse{
		Success:   true,
		Recording: rec,
	})
}

// ListMemories handles GET /memories: recordings shared with the caller.
func (h *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	recs, err := h.memoryService.ListSharedMemories(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RecordingListResponse{
		Success:    true,
		Recordings: recs,
	})
}

// CreateRecording handles POST /audio: a plain library upload, no fan-out.
func (h *MemoryHandler) CreateRecording(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateRecordingRequest
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

	rec, err := h.memoryService.CreateRecording(r.Context(), userID, req.FamilyID, service.CreateRecordingParams{
		Title:       req.Title,
		Description: req.Description,
		AudioURL:    req.AudioURL,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RecordingResponse{
		Success:   true,
		Recording: rec,
	})
}

// ListRecordings handles GET /audio?familyId=: the family's library.
func (h *MemoryHandler) ListRecordings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	familyID, err := getQueryUUID(r, "familyId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	recs, err := h.memoryService.ListFamilyRecordings(r.Context(), familyID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RecordingListResponse{
		Success:    true,
		Recordings: recs,
	})
}
