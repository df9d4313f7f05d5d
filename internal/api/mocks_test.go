package api

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/service"
	"github.com/remnant-app/remnant-api/internal/service/auth"
	"github.com/remnant-app/remnant-api/internal/store"
	"github.com/remnant-app/remnant-api/internal/voice"
)

var (
	_ store.UserStore       = (*mockUserStore)(nil)
	_ auth.JWTService       = (*mockJWTService)(nil)
	_ auth.PasswordHasher   = (*mockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*mockPasswordVerifier)(nil)
	_ service.FamilyService = (*mockFamilyService)(nil)
	_ service.MemoryService = (*mockMemoryService)(nil)
	_ service.VoiceService  = (*mockVoiceService)(nil)
)

// mockUserStore is a testify mock for store.UserStore.
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) SetVoice(ctx context.Context, id uuid.UUID, voiceID string, sampleURL *string) error {
	args := m.Called(ctx, id, voiceID, sampleURL)
	return args.Error(0)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	args := m.Called(tx)
	return args.Get(0).(store.UserStore)
}

// mockJWTService is a testify mock for auth.JWTService.
type mockJWTService struct {
	mock.Mock
}

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

// mockPasswordHasher is a testify mock for auth.PasswordHasher.
type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// mockPasswordVerifier is a testify mock for auth.PasswordVerifier.
type mockPasswordVerifier struct {
	mock.Mock
}

func (m *mockPasswordVerifier) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

// mockFamilyService is a testify mock for service.FamilyService.
type mockFamilyService struct {
	mock.Mock
}

func (m *mockFamilyService) CreateFamily(ctx context.Context, creatorID uuid.UUID, name, description string) (*domain.Family, error) {
	args := m.Called(ctx, creatorID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Family), args.Error(1)
}

func (m *mockFamilyService) JoinFamily(ctx context.Context, userID, familyID uuid.UUID, inviteCode string) (*domain.FamilyMember, error) {
	args := m.Called(ctx, userID, familyID, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FamilyMember), args.Error(1)
}

func (m *mockFamilyService) ListFamilies(ctx context.Context, userID uuid.UUID) ([]*store.FamilyWithCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.FamilyWithCounts), args.Error(1)
}

func (m *mockFamilyService) GetFamily(ctx context.Context, familyID, requesterID uuid.UUID) (*store.FamilyWithCounts, error) {
	args := m.Called(ctx, familyID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FamilyWithCounts), args.Error(1)
}

func (m *mockFamilyService) ListMembers(ctx context.Context, familyID, requesterID uuid.UUID) ([]domain.FamilyMember, error) {
	args := m.Called(ctx, familyID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FamilyMember), args.Error(1)
}

func (m *mockFamilyService) RemoveMember(ctx context.Context, familyID, adminID, targetID uuid.UUID) error {
	args := m.Called(ctx, familyID, adminID, targetID)
	return args.Error(0)
}

func (m *mockFamilyService) LeaveOrDeleteFamily(ctx context.Context, familyID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, familyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFamilyService) FindFamilyByInviteCode(ctx context.Context, code string) (*domain.FamilyPublicView, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FamilyPublicView), args.Error(1)
}

// mockMemoryService is a testify mock for service.MemoryService.
type mockMemoryService struct {
	mock.Mock
}

func (m *mockMemoryService) CreateMemory(ctx context.Context, uploaderID, familyID uuid.UUID, params service.CreateMemoryParams) (*domain.AudioRecording, error) {
	args := m.Called(ctx, uploaderID, familyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AudioRecording), args.Error(1)
}

func (m *mockMemoryService) ListSharedMemories(ctx context.Context, userID uuid.UUID) ([]*domain.AudioRecording, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AudioRecording), args.Error(1)
}

func (m *mockMemoryService) CreateRecording(ctx context.Context, uploaderID, familyID uuid.UUID, params service.CreateRecordingParams) (*domain.AudioRecording, error) {
	args := m.Called(ctx, uploaderID, familyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AudioRecording), args.Error(1)
}

func (m *mockMemoryService) ListFamilyRecordings(ctx context.Context, familyID, requesterID uuid.UUID) ([]*domain.AudioRecording, error) {
	args := m.Called(ctx, familyID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AudioRecording), args.Error(1)
}

// mockVoiceService is a testify mock for service.VoiceService.
type mockVoiceService struct {
	mock.Mock
}

func (m *mockVoiceService) RegisterVoice(ctx context.Context, userID uuid.UUID, sample []byte, mimeType string) (string, error) {
	args := m.Called(ctx, userID, sample, mimeType)
	return args.String(0), args.Error(1)
}

func (m *mockVoiceService) Presets(ctx context.Context) []voice.Preset {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]voice.Preset)
}

func (m *mockVoiceService) GenerateMessage(ctx context.Context, userID uuid.UUID, params service.GenerateMessageParams) (*service.GeneratedMessage, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GeneratedMessage), args.Error(1)
}
