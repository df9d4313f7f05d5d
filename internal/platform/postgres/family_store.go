package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/remnant-app/remnant-api/internal/domain"
	"github.com/remnant-app/remnant-api/internal/platform/logger"
	"github.com/remnant-app/remnant-api/internal/store"
)

// FamilyStore implements the store.FamilyStore interface using a PostgreSQL
// database as the storage backend.
type FamilyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewFamilyStore creates a new PostgreSQL implementation of the FamilyStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// is used.
func NewFamilyStore(db store.DBTX, log *slog.Logger) *FamilyStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &FamilyStore{
		db:     db,
		logger: log.With(slog.String("component", "family_store")),
	}
}

// Ensure FamilyStore implements store.FamilyStore interface
var _ store.FamilyStore = (*FamilyStore)(nil)

// Create implements store.FamilyStore.Create
// Returns store.ErrInviteCodeExists on an invite-code collision.
func (s *FamilyStore) Create(ctx context.Context, family *domain.Family) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := family.Validate(); err != nil {
		log.Warn("family validation failed during create",
			slog.String("error", err.Error()),
			slog.String("family_id", family.ID.String()))
		return err
	}

	query := `
		INSERT INTO families (id, name, description, invite_code, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		family.ID,
		family.Name,
		family.Description,
		family.InviteCode,
		family.CreatedByID,
		family.CreatedAt,
		family.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "families_invite_code_key") {
			log.Debug("invite code collision during family creation",
				slog.String("family_id", family.ID.String()))
			return store.ErrInviteCodeExists
		}

		log.Error("failed to create family",
			slog.String("error", err.Error()),
			slog.String("family_id", family.ID.String()))
		return mapError(err)
	}

	log.Info("family created successfully",
		slog.String("family_id", family.ID.String()),
		slog.String("created_by", family.CreatedByID.String()))
	return nil
}

// GetByID implements store.FamilyStore.GetByID
// Returns store.ErrFamilyNotFound if the family does not exist.
func (s *FamilyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Family, error) {
	query := `
		SELECT id, name, description, invite_code, created_by, created_at, updated_at
		FROM families
		WHERE id = $1
	`

	var family domain.Family
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&family.ID,
		&family.Name,
		&family.Description,
		&family.InviteCode,
		&family.CreatedByID,
		&family.CreatedAt,
		&family.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFamilyNotFound
		}
		return nil, mapError(err)
	}

	return &family, nil
}

// GetByInviteCode implements store.FamilyStore.GetByInviteCode
// Returns store.ErrFamilyNotFound if no family has the given code.
// Only public fields and the member count are selected; member details are
// never exposed through this path.
func (s *FamilyStore) GetByInviteCode(ctx context.Context, code string) (*domain.FamilyPublicView, error) {
	query := `
		SELECT f.id, f.name, f.description, f.invite_code,
		       (SELECT COUNT(*) FROM family_members fm WHERE fm.family_id = f.id)
		FROM families f
		WHERE f.invite_code = $1
	`

	var view domain.FamilyPublicView
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&view.ID,
		&view.Name,
		&view.Description,
		&view.InviteCode,
		&view.MemberCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFamilyNotFound
		}
		return nil, mapError(err)
	}

	return &view, nil
}

// ListForUser implements store.FamilyStore.ListForUser
func (s *FamilyStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*store.FamilyWithCounts, error) {
	query := `
		SELECT f.id, f.name, f.description, f.invite_code, f.created_by, f.created_at, f.updated_at,
		       u.id, u.name, u.email,
		       (SELECT COUNT(*) FROM family_members fm WHERE fm.family_id = f.id),
		       (SELECT COUNT(*) FROM audio_recordings ar WHERE ar.family_id = f.id)
		FROM families f
		JOIN family_members m ON m.family_id = f.id AND m.user_id = $1
		JOIN users u ON u.id = f.created_by
		ORDER BY f.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var families []*store.FamilyWithCounts
	for rows.Next() {
		var fc store.FamilyWithCounts
		var creator domain.UserSummary

		err := rows.Scan(
			&fc.ID,
			&fc.Name,
			&fc.Description,
			&fc.InviteCode,
			&fc.CreatedByID,
			&fc.CreatedAt,
			&fc.UpdatedAt,
			&creator.ID,
			&creator.Name,
			&creator.Email,
			&fc.MemberCount,
			&fc.RecordingCount,
		)
		if err != nil {
			return nil, mapError(err)
		}

		fc.CreatedBy = &creator
		families = append(families, &fc)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return families, nil
}

// GetDetail implements store.FamilyStore.GetDetail
// Returns store.ErrFamilyNotFound if the family does not exist.
func (s *FamilyStore) GetDetail(ctx context.Context, id uuid.UUID) (*store.FamilyWithCounts, error) {
	query := `
		SELECT f.id, f.name, f.description, f.invite_code, f.created_by, f.created_at, f.updated_at,
		       u.id, u.name, u.email,
		       (SELECT COUNT(*) FROM audio_recordings ar WHERE ar.family_id = f.id)
		FROM families f
		JOIN users u ON u.id = f.created_by
		WHERE f.id = $1
	`

	var fc store.FamilyWithCounts
	var creator domain.UserSummary

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&fc.ID,
		&fc.Name,
		&fc.Description,
		&fc.InviteCode,
		&fc.CreatedByID,
		&fc.CreatedAt,
		&fc.UpdatedAt,
		&creator.ID,
		&creator.Name,
		&creator.Email,
		&fc.RecordingCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFamilyNotFound
		}
		return nil, mapError(err)
	}

	fc.CreatedBy = &creator

	members, err := s.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	fc.Members = members
	fc.MemberCount = len(members)
	return &fc, nil
}

// AddMember implements store.FamilyStore.AddMember
// Returns store.ErrMemberExists if the user already holds a membership row
// for the family. The composite unique key makes this the single outcome of
// a lost race between two concurrent joins with the same invite code.
func (s *FamilyStore) AddMember(ctx context.Context, member *domain.FamilyMember) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := member.Validate(); err != nil {
		log.Warn("membership validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", member.UserID.String()),
			slog.String("family_id", member.FamilyID.String()))
		return err
	}

	query := `
		INSERT INTO family_members (user_id, family_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		member.UserID,
		member.FamilyID,
		member.Role,
		member.JoinedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "family_members_user_id_family_id_key") {
			log.Debug("duplicate membership rejected",
				slog.String("user_id", member.UserID.String()),
				slog.String("family_id", member.FamilyID.String()))
			return store.ErrMemberExists
		}

		log.Error("failed to add family member",
			slog.String("error", err.Error()),
			slog.String("user_id", member.UserID.String()),
			slog.String("family_id", member.FamilyID.String()))
		return mapError(err)
	}

	log.Info("family member added",
		slog.String("user_id", member.UserID.String()),
		slog.String("family_id", member.FamilyID.String()),
		slog.String("role", string(member.Role)))
	return nil
}

// GetMember implements store.FamilyStore.GetMember
// Returns store.ErrMemberNotFound if the user is not a member.
func (s *FamilyStore) GetMember(ctx context.Context, familyID, userID uuid.UUID) (*domain.FamilyMember, error) {
	query := `
		SELECT user_id, family_id, role, joined_at
		FROM family_members
		WHERE family_id = $1 AND user_id = $2
	`

	var member domain.FamilyMember
	var role string

	err := s.db.QueryRowContext(ctx, query, familyID, userID).Scan(
		&member.UserID,
		&member.FamilyID,
		&role,
		&member.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMemberNotFound
		}
		return nil, mapError(err)
	}

	member.Role = domain.Role(role)
	return &member, nil
}

// ListMembers implements store.FamilyStore.ListMembers
// Members are ordered by joined_at ascending with user summaries embedded.
func (s *FamilyStore) ListMembers(ctx context.Context, familyID uuid.UUID) ([]domain.FamilyMember, error) {
	query := `
		SELECT m.user_id, m.family_id, m.role, m.joined_at,
		       u.id, u.name, u.email, u.voice_id
		FROM family_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.family_id = $1
		ORDER BY m.joined_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var members []domain.FamilyMember
	for rows.Next() {
		var member domain.FamilyMember
		var role string
		var user domain.UserSummary

		err := rows.Scan(
			&member.UserID,
			&member.FamilyID,
			&role,
			&member.JoinedAt,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.VoiceID,
		)
		if err != nil {
			return nil, mapError(err)
		}

		member.Role = domain.Role(role)
		member.User = &user
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return members, nil
}

// ListMemberIDs implements store.FamilyStore.ListMemberIDs
func (s *FamilyStore) ListMemberIDs(ctx context.Context, familyID uuid.UUID, exclude uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM family_members
		WHERE family_id = $1 AND user_id <> $2
	`

	rows, err := s.db.QueryContext(ctx, query, familyID, exclude)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return ids, nil
}

// CountMembers implements store.FamilyStore.CountMembers
func (s *FamilyStore) CountMembers(ctx context.Context, familyID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM family_members WHERE family_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, familyID).Scan(&count); err != nil {
		return 0, mapError(err)
	}

	return count, nil
}

// RemoveMember implements store.FamilyStore.RemoveMember
// Returns store.ErrMemberNotFound if no membership row exists for the pair;
// removing an absent member is an explicit error, never a silent no-op.
func (s *FamilyStore) RemoveMember(ctx context.Context, familyID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM family_members WHERE family_id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, familyID, userID)
	if err != nil {
		log.Error("failed to remove family member",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("family_id", familyID.String()))
		return mapError(err)
	}

	if err := checkRowsAffected(result, store.ErrMemberNotFound); err != nil {
		return err
	}

	log.Info("family member removed",
		slog.String("user_id", userID.String()),
		slog.String("family_id", familyID.String()))
	return nil
}

// Delete implements store.FamilyStore.Delete
// Membership rows cascade via the schema's ON DELETE CASCADE.
func (s *FamilyStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM families WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete family",
			slog.String("error", err.Error()),
			slog.String("family_id", id.String()))
		return mapError(err)
	}

	if err := checkRowsAffected(result, store.ErrFamilyNotFound); err != nil {
		return err
	}

	log.Info("family deleted",
		slog.String("family_id", id.String()))
	return nil
}

// WithTx implements store.FamilyStore.WithTx
func (s *FamilyStore) WithTx(tx *sql.Tx) store.FamilyStore {
	return &FamilyStore{
		db:     tx,
		logger: s.logger,
	}
}
