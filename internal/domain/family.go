package domain

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the membership role a user holds within a family.
type Role string

// Possible membership roles. The family creator is the sole ADMIN at
// creation time; every later joiner is a MEMBER.
const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Common validation errors for Family and FamilyMember.
var (
	ErrEmptyFamilyID   = fmt.Errorf("%w: family ID cannot be empty", ErrValidation)
	ErrEmptyFamilyName = fmt.Errorf("%w: family name cannot be empty", ErrValidation)
	ErrEmptyInviteCode = fmt.Errorf("%w: invite code cannot be empty", ErrValidation)
	ErrEmptyCreatorID  = fmt.Errorf("%w: family creator ID cannot be empty", ErrValidation)
	ErrInvalidRole     = fmt.Errorf("%w: invalid membership role", ErrValidation)
)

// inviteCodeAlphabet deliberately omits easily confused characters (0/O, 1/I/L).
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// inviteCodeLength is the number of characters in a generated invite code.
const inviteCodeLength = 8

// Family is a group entity that scopes membership and shared recordings.
// The invite code is a shared secret that authorizes joining without prior
// membership.
type Family struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	InviteCode  string    `json:"invite_code"`
	CreatedByID uuid.UUID `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FamilyMember is the join entity between a user and a family. The
// (UserID, FamilyID) pair is unique: a user cannot hold two memberships for
// the same family.
type FamilyMember struct {
	UserID   uuid.UUID `json:"user_id"`
	FamilyID uuid.UUID `json:"family_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	// User is the embedded summary of the member, populated by joined
	// queries; nil when not requested.
	User *UserSummary `json:"user,omitempty"`
}

// FamilyPublicView is the unauthenticated projection returned by invite-code
// lookup. It never contains member details.
type FamilyPublicView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	InviteCode  string    `json:"invite_code"`
	MemberCount int       `json:"member_count"`
}

// NewFamily creates a new Family for the given creator, generating an ID and
// a fresh invite code. The creator's ADMIN membership row is created by the
// store alongside the family, in the same transaction.
func NewFamily(creatorID uuid.UUID, name, description string) (*Family, error) {
	code, err := GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite code: %w", err)
	}

	family := &Family{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		InviteCode:  code,
		CreatedByID: creatorID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := family.Validate(); err != nil {
		return nil, err
	}

	return family, nil
}

// Validate checks if the Family has valid data.
func (f *Family) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFamilyID
	}

	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyFamilyName
	}

	if f.InviteCode == "" {
		return ErrEmptyInviteCode
	}

	if f.CreatedByID == uuid.Nil {
		return ErrEmptyCreatorID
	}

	return nil
}

// NewFamilyMember creates a membership row for the given user and family.
func NewFamilyMember(userID, familyID uuid.UUID, role Role) (*FamilyMember, error) {
	member := &FamilyMember{
		UserID:   userID,
		FamilyID: familyID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}

	return member, nil
}

// Validate checks if the FamilyMember has valid data.
func (m *FamilyMember) Validate() error {
	if m.UserID == uuid.Nil {
		return ErrEmptyUserID
	}

	if m.FamilyID == uuid.Nil {
		return ErrEmptyFamilyID
	}

	if m.Role != RoleAdmin && m.Role != RoleMember {
		return ErrInvalidRole
	}

	return nil
}

// IsAdmin reports whether the member holds the ADMIN role.
func (m *FamilyMember) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// GenerateInviteCode produces a random invite code from a reduced alphabet.
// Uniqueness is enforced by the database; callers retry on collision.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	for i, b := range buf {
		buf[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}

	return string(buf), nil
}
