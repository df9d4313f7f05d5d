package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/store"
)

// maxInviteCodeAttempts bounds the number of invite-code regenerations on a
// uniqueness collision before giving up.
const maxInviteCodeAttempts = 5

// FamilyService provides family and membership operations, enforcing the
// membership rules: one ADMIN (the creator), admin-only removal, and the
// creator-leave restrictions.
type FamilyService interface {
	// CreateFamily creates a family with a fresh invite code and the
	// creator's ADMIN membership, atomically.
	CreateFamily(ctx context.Context, creatorID uuid.UUID, name, description string) (*domain.Family, error)

	// JoinFamily adds the user as a MEMBER if the invite code matches.
	JoinFamily(ctx context.Context, userID, familyID uuid.UUID, inviteCode string) (*domain.FamilyMember, error)

	// ListFamilies returns the user's families newest first, with creator
	// summaries and member/recording counts.
	ListFamilies(ctx context.Context, userID uuid.UUID) ([]*store.FamilyWithCounts, error)

	// GetFamily returns the family detail for a member.
	GetFamily(ctx context.Context, familyID, requesterID uuid.UUID) (*store.FamilyWithCounts, error)

	// ListMembers returns the family's members, joined_at ascending.
	ListMembers(ctx context.Context, familyID, requesterID uuid.UUID) ([]domain.FamilyMember, error)

	// RemoveMember removes targetID from the family; adminID must hold the
	// ADMIN role and may not remove themselves through this path.
	RemoveMember(ctx context.Context, familyID, adminID, targetID uuid.UUID) error

	// LeaveOrDeleteFamily removes the user's membership, or deletes the
	// whole family when the leaving user is the creator and sole member.
	// Returns true when the family itself was deleted.
	LeaveOrDeleteFamily(ctx context.Context, familyID, userID uuid.UUID) (deleted bool, err error)

	// FindFamilyByInviteCode resolves an invite code to the family's public
	// view. Unauthenticated.
	FindFamilyByInviteCode(ctx context.Context, code string) (*domain.FamilyPublicView, error)
}

// familyService is the production FamilyService backed by postgres stores.
type familyService struct {
	db          *sql.DB
	familyStore store.FamilyStore
	logger      *slog.Logger
}

// Ensure familyService implements FamilyService interface
var _ FamilyService = (*familyService)(nil)

// NewFamilyService creates a FamilyService. The *sql.DB is used to open the
// transactions that span family and membership writes.
func NewFamilyService(db *sql.DB, familyStore store.FamilyStore, log *slog.Logger) FamilyService {
	if log == nil {
		log = slog.Default()
	}

	return &familyService{
		db:          db,
		familyStore: familyStore,
		logger:      log.With(slog.String("component", "family_service")),
	}
}

// CreateFamily implements FamilyService.CreateFamily
// The family row and the creator's ADMIN membership are written in one
// transaction; an invite-code collision regenerates the code and retries.
func (s *familyService) CreateFamily(
	ctx context.Context,
	creatorID uuid.UUID,
	name, description string,
) (*domain.Family, error) {
	family, err := domain.NewFamily(creatorID, name, description)
	if err != nil {
		return nil, err
	}

	member, err := domain.NewFamilyMember(creatorID, family.ID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			txStore := s.familyStore.WithTx(tx)

			if err := txStore.Create(ctx, family); err != nil {
				return err
			}

			return txStore.AddMember(ctx, member)
		})

		if err == nil {
			break
		}

		if errors.Is(err, store.ErrInviteCodeExists) && attempt < maxInviteCodeAttempts-1 {
			code, genErr := domain.GenerateInviteCode()
			if genErr != nil {
				return nil, genErr
			}
			family.InviteCode = code
			continue
		}

		return nil, err
	}

	s.logger.InfoContext(ctx, "family created",
		slog.String("family_id", family.ID.String()),
		slog.String("creator_id", creatorID.String()))
	return family, nil
}

// JoinFamily implements FamilyService.JoinFamily
// Fails with store.ErrFamilyNotFound if the family does not exist, with
// ErrInvalidInviteCode on a code mismatch, and with store.ErrMemberExists if
// the user is already a member. Concurrent joins with the same valid code
// resolve through the membership unique constraint: exactly one insert wins.
func (s *familyService) JoinFamily(
	ctx context.Context,
	userID, familyID uuid.UUID,
	inviteCode string,
) (*domain.FamilyMember, error) {
	family, err := s.familyStore.GetByID(ctx, familyID)
	if err != nil {
		return nil, err
	}

	if family.InviteCode != inviteCode {
		return nil, ErrInvalidInviteCode
	}

	member, err := domain.NewFamilyMember(userID, familyID, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	if err := s.familyStore.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user joined family",
		slog.String("family_id", familyID.String()),
		slog.String("user_id", userID.String()))
	return member, nil
}

// ListFamilies implements FamilyService.ListFamilies
func (s *familyService) ListFamilies(ctx context.Context, userID uuid.UUID) ([]*store.FamilyWithCounts, error) {
	return s.familyStore.ListForUser(ctx, userID)
}

// GetFamily implements FamilyService.GetFamily
// Fails with ErrNotMember unless the requester holds a membership row.
func (s *familyService) GetFamily(
	ctx context.Context,
	familyID, requesterID uuid.UUID,
) (*store.FamilyWithCounts, error) {
	if err := s.requireMembership(ctx, familyID, requesterID); err != nil {
		return nil, err
	}

	return s.familyStore.GetDetail(ctx, familyID)
}

// ListMembers implements FamilyService.ListMembers
// Fails with ErrNotMember unless the requester holds a membership row.
func (s *familyService) ListMembers(
	ctx context.Context,
	familyID, requesterID uuid.UUID,
) ([]domain.FamilyMember, error) {
	if err := s.requireMembership(ctx, familyID, requesterID); err != nil {
		return nil, err
	}

	return s.familyStore.ListMembers(ctx, familyID)
}

// RemoveMember implements FamilyService.RemoveMember
// Fails with ErrNotAdmin unless adminID holds the ADMIN role, with
// ErrSelfRemoval when the admin targets themselves, and with
// store.ErrMemberNotFound when the target was never a member.
func (s *familyService) RemoveMember(ctx context.Context, familyID, adminID, targetID uuid.UUID) error {
	admin, err := s.familyStore.GetMember(ctx, familyID, adminID)
	if err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			return ErrNotAdmin
		}
		return err
	}

	if !admin.IsAdmin() {
		return ErrNotAdmin
	}

	if targetID == adminID {
		return ErrSelfRemoval
	}

	return s.familyStore.RemoveMember(ctx, familyID, targetID)
}

// LeaveOrDeleteFamily implements FamilyService.LeaveOrDeleteFamily
// Rules, checked inside one transaction so the member count cannot drift:
//   - non-members are rejected with ErrNotMember
//   - the creator cannot leave while other members remain
//   - the creator leaving alone deletes the family (memberships cascade)
//   - anyone else just loses their membership row
func (s *familyService) LeaveOrDeleteFamily(ctx context.Context, familyID, userID uuid.UUID) (bool, error) {
	var deleted bool

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.familyStore.WithTx(tx)

		if _, err := txStore.GetMember(ctx, familyID, userID); err != nil {
			if errors.Is(err, store.ErrMemberNotFound) {
				return ErrNotMember
			}
			return err
		}

		family, err := txStore.GetByID(ctx, familyID)
		if err != nil {
			return err
		}

		count, err := txStore.CountMembers(ctx, familyID)
		if err != nil {
			return err
		}

		if family.CreatedByID == userID {
			if count > 1 {
				return ErrCreatorCannotLeave
			}

			deleted = true
			return txStore.Delete(ctx, familyID)
		}

		return txStore.RemoveMember(ctx, familyID, userID)
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.InfoContext(ctx, "family deleted by creator",
			slog.String("family_id", familyID.String()),
			slog.String("user_id", userID.String()))
	} else {
		s.logger.InfoContext(ctx, "user left family",
			slog.String("family_id", familyID.String()),
			slog.String("user_id", userID.String()))
	}

	return deleted, nil
}

// FindFamilyByInviteCode implements FamilyService.FindFamilyByInviteCode
func (s *familyService) FindFamilyByInviteCode(ctx context.Context, code string) (*domain.FamilyPublicView, error) {
	return s.familyStore.GetByInviteCode(ctx, code)
}

// requireMembership returns ErrNotMember when the user holds no membership
// row for the family.
func (s *familyService) requireMembership(ctx context.Context, familyID, userID uuid.UUID) error {
	if _, err := s.familyStore.GetMember(ctx, familyID, userID); err != nil {
		if errors.Is(err, store.ErrMemberNotFound) {
			return ErrNotMember
		}
		return err
	}
	return nil
}
