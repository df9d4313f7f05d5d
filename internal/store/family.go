package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/remnant-app/remnant-api/internal/domain"
)

// FamilyWithCounts is a family row extended with the aggregate counts the
// list and detail views expose.
type FamilyWithCounts struct {
	domain.Family
	MemberCount    int                   `json:"member_count"`
	RecordingCount int                   `json:"recording_count"`
	CreatedBy      *domain.UserSummary   `json:"created_by,omitempty"`
	Members        []domain.FamilyMember `json:"members,omitempty"`
}

// FamilyStore defines the interface for family and membership persistence.
type FamilyStore interface {
	// Create saves a new family row.
	// Returns ErrInviteCodeExists on an invite-code collision so callers can
	// regenerate the code and retry.
	Create(ctx context.Context, family *domain.Family) error

	// GetByID retrieves a family by its unique ID.
	// Returns ErrFamilyNotFound if the family does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Family, error)

	// GetByInviteCode retrieves the public view of the family holding the
	// given invite code, including its member count.
	// Returns ErrFamilyNotFound if no family has that code.
	GetByInviteCode(ctx context.Context, code string) (*domain.FamilyPublicView, error)

	// ListForUser returns all families the user is a member of, newest
	// first, each with creator summary and member/recording counts.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*FamilyWithCounts, error)

	// GetDetail returns the family with its members (joined_at ascending,
	// user summaries embedded) and recording count.
	// Returns ErrFamilyNotFound if the family does not exist.
	GetDetail(ctx context.Context, id uuid.UUID) (*FamilyWithCounts, error)

	// AddMember inserts a membership row.
	// Returns ErrMemberExists if the user already has a membership for the
	// family and ErrInvalidEntity if the user or family does not exist.
	AddMember(ctx context.Context, member *domain.FamilyMember) error

	// GetMember retrieves the membership row for (familyID, userID).
	// Returns ErrMemberNotFound if the user is not a member.
	GetMember(ctx context.Context, familyID, userID uuid.UUID) (*domain.FamilyMember, error)

	// ListMembers returns all members of the family ordered by joined_at
	// ascending, with user summaries embedded.
	ListMembers(ctx context.Context, familyID uuid.UUID) ([]domain.FamilyMember, error)

	// ListMemberIDs returns the user IDs of every member of the family,
	// optionally excluding one user. Used by the sharing fan-out to snapshot
	// the recipient set.
	ListMemberIDs(ctx context.Context, familyID uuid.UUID, exclude uuid.UUID) ([]uuid.UUID, error)

	// CountMembers returns the number of membership rows for the family.
	CountMembers(ctx context.Context, familyID uuid.UUID) (int, error)

	// RemoveMember deletes the membership row for (familyID, userID).
	// Returns ErrMemberNotFound if no such row exists; removal of an absent
	// member is never silently ignored.
	RemoveMember(ctx context.Context, familyID, userID uuid.UUID) error

	// Delete removes the family row; membership rows cascade.
	// Returns ErrFamilyNotFound if the family does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new FamilyStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) FamilyStore
}
