package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/store"
)

func TestCreateMemoryMembershipCheck(t *testing.T) {
	t.Parallel()

	uploaderID := uuid.New()
	familyID := uuid.New()

	familyStore := new(MockFamilyStore)
	familyStore.On("GetMember", mock.Anything, familyID, uploaderID).
		Return(nil, store.ErrMemberNotFound)

	recordingStore := new(MockRecordingStore)

	svc := NewMemoryService(nil, recordingStore, familyStore, nil)

	_, err := svc.CreateMemory(context.Background(), uploaderID, familyID, CreateMemoryParams{
		Title:    "First steps",
		AudioURL: "https://cdn.example.com/a.mp3",
	})
	assert.ErrorIs(t, err, ErrNotMember)
	recordingStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMemoryValidation(t *testing.T) {
	t.Parallel()

	uploaderID := uuid.New()
	familyID := uuid.New()

	membership := &domain.FamilyMember{
		UserID: uploaderID, FamilyID: familyID, Role: domain.RoleMember,
	}

	familyStore := new(MockFamilyStore)
	familyStore.On("GetMember", mock.Anything, familyID, uploaderID).Return(membership, nil)

	svc := NewMemoryService(nil, new(MockRecordingStore), familyStore, nil)

	t.Run("missing title", func(t *testing.T) {
		_, err := svc.CreateMemory(context.Background(), uploaderID, familyID, CreateMemoryParams{
			AudioURL: "https://cdn.example.com/a.mp3",
		})
		assert.ErrorIs(t, err, domain.ErrEmptyRecordingTitle)
	})

	t.Run("missing audio URL", func(t *testing.T) {
		_, err := svc.CreateMemory(context.Background(), uploaderID, familyID, CreateMemoryParams{
			Title: "First steps",
		})
		assert.ErrorIs(t, err, domain.ErrEmptyAudioURL)
	})
}

func TestListSharedMemories(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	recs := []*domain.AudioRecording{
		{ID: uuid.New(), Title: "Grandma's birthday message"},
	}

	recordingStore := new(MockRecordingStore)
	recordingStore.On("ListSharedWith", mock.Anything, userID).Return(recs, nil)

	svc := NewMemoryService(nil, recordingStore, new(MockFamilyStore), nil)

	got, err := svc.ListSharedMemories(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Grandma's birthday message", got[0].Title)
}

func TestCreateRecording(t *testing.T) {
	t.Parallel()

	uploaderID := uuid.New()
	familyID := uuid.New()

	membership := &domain.FamilyMember{
		UserID: uploaderID, FamilyID: familyID, Role: domain.RoleMember,
	}

	t.Run("success with tags", func(t *testing.T) {
		t.Parallel()

		familyStore := new(MockFamilyStore)
		familyStore.On("GetMember", mock.Anything, familyID, uploaderID).Return(membership, nil)

		recordingStore := new(MockRecordingStore)
		recordingStore.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.AudioRecording) bool {
			return r.Title == "Lullaby" &&
				len(r.Tags) == 2 &&
				r.IsPublic &&
				r.UploadedByID == uploaderID
		})).Return(nil)

		svc := NewMemoryService(nil, recordingStore, familyStore, nil)

		rec, err := svc.CreateRecording(context.Background(), uploaderID, familyID, CreateRecordingParams{
			Title:    "Lullaby",
			AudioURL: "https://cdn.example.com/l.mp3",
			MimeType: "audio/mpeg",
			Tags:     []string{"bedtime", "kids"},
			IsPublic: true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"bedtime", "kids"}, rec.Tags)
		recordingStore.AssertExpectations(t)
	})

	t.Run("non-member is rejected", func(t *testing.T) {
		t.Parallel()

		familyStore := new(MockFamilyStore)
		familyStore.On("GetMember", mock.Anything, familyID, uploaderID).
			Return(nil, store.ErrMemberNotFound)

		svc := NewMemoryService(nil, new(MockRecordingStore), familyStore, nil)

		_, err := svc.CreateRecording(context.Background(), uploaderID, familyID, CreateRecordingParams{
			Title:    "Lullaby",
			AudioURL: "https://cdn.example.com/l.mp3",
		})
		assert.ErrorIs(t, err, ErrNotMember)
	})
}

func TestListFamilyRecordings(t *testing.T) {
	t.Parallel()

	familyID := uuid.New()
	requesterID := uuid.New()

	t.Run("non-member is rejected", func(t *testing.T) {
		t.Parallel()

		familyStore := new(MockFamilyStore)
		familyStore.On("GetMember", mock.Anything, familyID, requesterID).
			Return(nil, store.ErrMemberNotFound)

		svc := NewMemoryService(nil, new(MockRecordingStore), familyStore, nil)

		_, err := svc.ListFamilyRecordings(context.Background(), familyID, requesterID)
		assert.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("member lists recordings", func(t *testing.T) {
		t.Parallel()

		membership := &domain.FamilyMember{
			UserID: requesterID, FamilyID: familyID, Role: domain.RoleMember,
		}
		recs := []*domain.AudioRecording{{ID: uuid.New()}, {ID: uuid.New()}}

		familyStore := new(MockFamilyStore)
		familyStore.On("GetMember", mock.Anything, familyID, requesterID).Return(membership, nil)

		recordingStore := new(MockRecordingStore)
		recordingStore.On("ListByFamily", mock.Anything, familyID).Return(recs, nil)

		svc := NewMemoryService(nil, recordingStore, familyStore, nil)

		got, err := svc.ListFamilyRecordings(context.Background(), familyID, requesterID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
