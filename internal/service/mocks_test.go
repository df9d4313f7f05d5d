package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/store"
)

// MockUserStore mocks the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) SetVoice(
	ctx context.Context,
	id uuid.UUID,
	voiceID string,
	sampleURL *string,
) error {
	args := m.Called(ctx, id, voiceID, sampleURL)
	return args.Error(0)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	args := m.Called(tx)
	return args.Get(0).(store.UserStore)
}

// MockFamilyStore mocks the store.FamilyStore interface
type MockFamilyStore struct {
	mock.Mock
}

func (m *MockFamilyStore) Create(ctx context.Context, family *domain.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockFamilyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Family, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Family), args.Error(1)
}

func (m *MockFamilyStore) GetByInviteCode(
	ctx context.Context,
	code string,
) (*domain.FamilyPublicView, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FamilyPublicView), args.Error(1)
}

func (m *MockFamilyStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*store.FamilyWithCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.FamilyWithCounts), args.Error(1)
}

func (m *MockFamilyStore) GetDetail(
	ctx context.Context,
	familyID uuid.UUID,
) (*store.FamilyWithCounts, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FamilyWithCounts), args.Error(1)
}

func (m *MockFamilyStore) AddMember(ctx context.Context, member *domain.FamilyMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockFamilyStore) GetMember(
	ctx context.Context,
	familyID, userID uuid.UUID,
) (*domain.FamilyMember, error) {
	args := m.Called(ctx, familyID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FamilyMember), args.Error(1)
}

func (m *MockFamilyStore) ListMembers(
	ctx context.Context,
	familyID uuid.UUID,
) ([]domain.FamilyMember, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FamilyMember), args.Error(1)
}

func (m *MockFamilyStore) ListMemberIDs(
	ctx context.Context,
	familyID, exclude uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, familyID, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockFamilyStore) CountMembers(ctx context.Context, familyID uuid.UUID) (int, error) {
	args := m.Called(ctx, familyID)
	return args.Int(0), args.Error(1)
}

func (m *MockFamilyStore) RemoveMember(ctx context.Context, familyID, userID uuid.UUID) error {
	args := m.Called(ctx, familyID, userID)
	return args.Error(0)
}

func (m *MockFamilyStore) Delete(ctx context.Context, familyID uuid.UUID) error {
	args := m.Called(ctx, familyID)
	return args.Error(0)
}

func (m *MockFamilyStore) WithTx(tx *sql.Tx) store.FamilyStore {
	args := m.Called(tx)
	return args.Get(0).(store.FamilyStore)
}

// MockRecordingStore mocks the store.RecordingStore interface
type MockRecordingStore struct {
	mock.Mock
}

func (m *MockRecordingStore) Create(ctx context.Context, rec *domain.AudioRecording) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordingStore) CreateShare(ctx context.Context, share *domain.SharedAudio) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *MockRecordingStore) ListSharedWith(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.AudioRecording, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AudioRecording), args.Error(1)
}

func (m *MockRecordingStore) ListByFamily(
	ctx context.Context,
	familyID uuid.UUID,
) ([]*domain.AudioRecording, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AudioRecording), args.Error(1)
}

func (m *MockRecordingStore) WithTx(tx *sql.Tx) store.RecordingStore {
	args := m.Called(tx)
	return args.Get(0).(store.RecordingStore)
}

// MockCloner mocks the voice.Cloner interface
type MockCloner struct {
	mock.Mock
}

func (m *MockCloner) CloneVoice(
	ctx context.Context,
	name, description string,
	sample []byte,
	mimeType string,
) (string, error) {
	args := m.Called(ctx, name, description, sample, mimeType)
	return args.String(0), args.Error(1)
}

// MockSynthesizer mocks the voice.Synthesizer interface
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(
	ctx context.Context,
	voiceID, text string,
) ([]byte, string, error) {
	args := m.Called(ctx, voiceID, text)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
