package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/remnant-app/remnant-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's HashedPassword must
	// already be populated; stores never see plaintext credentials.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetVoice persists the cloned-voice handle (and optionally the sample
	// URL) onto the user row after a successful voice clone.
	// Returns ErrUserNotFound if the user does not exist.
	SetVoice(ctx context.Context, id uuid.UUID, voiceID string, sampleURL *string) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
