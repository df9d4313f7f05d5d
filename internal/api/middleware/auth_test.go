package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/remnant-app/remnant-api/internal/api/shared"
	"github.com/remnant-app/remnant-api/internal/service/auth"
)

// mockJWTService is a testify mock for auth.JWTService.
type mockJWTService struct {
	mock.Mock
}

var _ auth.JWTService = (*mockJWTService)(nil)

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	// nextHandler records whether it ran and what user ID it saw.
	newNext := func(called *bool, gotUserID *uuid.UUID) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			if id, ok := GetUserID(r); ok {
				*gotUserID = id
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("valid token passes through with user in context", func(t *testing.T) {
		jwt := new(mockJWTService)
		jwt.On("ValidateToken", mock.Anything, "good-token").
			Return(&auth.Claims{UserID: userID, TokenType: "access"}, nil)

		var called bool
		var gotUserID uuid.UUID
		mw := NewAuthMiddleware(jwt)

		req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		mw.Authenticate(newNext(&called, &gotUserID)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		var called bool
		var gotUserID uuid.UUID
		mw := NewAuthMiddleware(new(mockJWTService))

		req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		w := httptest.NewRecorder()
		mw.Authenticate(newNext(&called, &gotUserID)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Authorization header required", resp.Error)
		assert.Equal(t, shared.CodeUnauthorized, resp.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		var called bool
		var gotUserID uuid.UUID
		mw := NewAuthMiddleware(new(mockJWTService))

		req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		mw.Authenticate(newNext(&called, &gotUserID)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)
	})

	t.Run("expired token", func(t *testing.T) {
		jwt := new(mockJWTService)
		jwt.On("ValidateToken", mock.Anything, "stale-token").
			Return(nil, auth.ErrExpiredToken)

		var called bool
		var gotUserID uuid.UUID
		mw := NewAuthMiddleware(jwt)

		req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		w := httptest.NewRecorder()
		mw.Authenticate(newNext(&called, &gotUserID)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Token expired", resp.Error)
	})

	t.Run("refresh token rejected on API routes", func(t *testing.T) {
		jwt := new(mockJWTService)
		jwt.On("ValidateToken", mock.Anything, "refresh-token").
			Return(nil, auth.ErrWrongTokenType)

		var called bool
		var gotUserID uuid.UUID
		mw := NewAuthMiddleware(jwt)

		req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		req.Header.Set("Authorization", "Bearer refresh-token")
		w := httptest.NewRecorder()
		mw.Authenticate(newNext(&called, &gotUserID)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)
	})

	t.Run("unexpected validation failure is an internal error", func(t *testing.T) {
		jwt := new(mockJWTService)
		jwt.On("ValidateToken", mock.Anything, "odd-token").
			Return(nil, context.DeadlineExceeded)

		var called bool
		var gotUserID uuid.UUID
		mw := NewAuthMiddleware(jwt)

		req := httptest.NewRequest(http.MethodGet, "/api/families", nil)
		req.Header.Set("Authorization", "Bearer odd-token")
		w := httptest.NewRecorder()
		mw.Authenticate(newNext(&called, &gotUserID)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, called)
	})
}

func TestTraceMiddleware(t *testing.T) {
	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	TraceMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, traceID, shared.TraceIDLength*2)
}
