package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/remnant-app/remnant-api/internal/api/shared"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/service/auth"
	"github.com/remnant-app/remnant-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

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

	user, err := domain.NewUser(req.Email, req.Password, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to create user", shared.CodeInternalError)
		return
	}
	user.HashedPassword = hashed

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(
				w, r, http.StatusConflict, "Email already exists", shared.CodeConflict)
			return
		}
		slog.Error("failed to create user", "error", err)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to create user", shared.CodeInternalError)
		return
	}

	accessToken, refreshToken, ok := h.generateTokenPair(w, r, user.ID)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Success:      true,
		User:         user.Summary(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

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

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(
				w, r, http.StatusUnauthorized, "Invalid credentials", shared.CodeUnauthorized)
			return
		}
		slog.Error("failed to get user by email", "error", err)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError, "Failed to authenticate user", shared.CodeInternalError)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(
			w, r, http.StatusUnauthorized, "Invalid credentials", shared.CodeUnauthorized)
		return
	}

	accessToken, refreshToken, ok := h.generateTokenPair(w, r, user.ID)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Success:      true,
		User:         user.Summary(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshToken handles the /auth/refresh endpoint, exchanging a valid
// refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

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

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	accessToken, refreshToken, ok := h.generateTokenPair(w, r, claims.UserID)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// generateTokenPair issues an access and refresh token, writing an error
// response and returning ok=false on failure.
func (h *AuthHandler) generateTokenPair(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
) (string, string, bool) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", shared.CodeInternalError)
		return "", "", false
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err)
		shared.RespondWithError(
			w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", shared.CodeInternalError)
		return "", "", false
	}

	return accessToken, refreshToken, true
}
