package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/remnant-app/remnant-api/internal/api/shared"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/service"
)

// FamilyHandler handles family and membership API requests.
type FamilyHandler struct {
	familyService service.FamilyService
	validator     *validator.Validate
}

// NewFamilyHandler creates a new FamilyHandler with the given dependencies.
func NewFamilyHandler(familyService service.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
		validator:     validator.New(),
	}
}

// CreateFamily handles POST /families.
func (h *FamilyHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateFamilyRequest
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

	family, err := h.familyService.CreateFamily(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, FamilyResponse{
		Success: true,
		Family:  family,
	})
}

// ListFamilies handles GET /families.
func (h *FamilyHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	families, err := h.familyService.ListFamilies(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FamilyListResponse{
		Success:  true,
		Families: families,
	})
}

// GetFamily handles GET /families/{id}.
func (h *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	userID, familyID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	family, err := h.familyService.GetFamily(r.Context(), familyID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FamilyResponse{
		Success: true,
		Family:  family,
	})
}

// JoinFamily handles POST /families/{id}/join.
func (h *FamilyHandler) JoinFamily(w http.ResponseWriter, r *http.Request) {
	userID, familyID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req JoinFamilyRequest
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

	member, err := h.familyService.JoinFamily(r.Context(), userID, familyID, req.InviteCode)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, struct {
		Success bool                 `json:"success"`
		Member  *domain.FamilyMember `json:"member"`
	}{
		Success: true,
		Member:  member,
	})
}

// ListMembers handles GET /families/{id}/members.
func (h *FamilyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, familyID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.familyService.ListMembers(r.Context(), familyID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MemberListResponse{
		Success: true,
		Members: members,
	})
}

// RemoveMember handles DELETE /families/{id}/members?memberId=.
func (h *FamilyHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, familyID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	targetID, err := getQueryUUID(r, "memberId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.familyService.RemoveMember(r.Context(), familyID, userID, targetID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Member removed",
	})
}

// LeaveFamily handles DELETE /families/{id}. The creator leaving alone
// deletes the family outright.
func (h *FamilyHandler) LeaveFamily(w http.ResponseWriter, r *http.Request) {
	userID, familyID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.familyService.LeaveOrDeleteFamily(r.Context(), familyID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LeaveFamilyResponse{
		Success:       true,
		FamilyDeleted: deleted,
	})
}

// ResolveInvite handles GET /families/invite?code=. Unauthenticated.
func (h *FamilyHandler) ResolveInvite(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		shared.RespondWithError(
			w, r, http.StatusBadRequest, "Invite code is required", shared.CodeValidationError)
		return
	}

	view, err := h.familyService.FindFamilyByInviteCode(r.Context(), code)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FamilyResponse{
		Success: true,
		Family:  view,
	})
}
