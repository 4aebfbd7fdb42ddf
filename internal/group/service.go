package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNameRequired  = errors.New("group name is required")
)

// How many fresh invitation codes to try before giving up on a collision
const maxCodeAttempts = 5

// Store is the persistence boundary for groups and memberships
type Store interface {
	Create(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	GetByInvitationCode(ctx context.Context, code string) (*Group, error)
	InvitationCodeExists(ctx context.Context, code string) (bool, error)
	AddMember(ctx context.Context, m *Membership) error
	GetMember(ctx context.Context, groupID, userID string) (*Membership, error)
	GetMembers(ctx context.Context, groupID string) ([]*Member, error)
	ListByUserID(ctx context.Context, userID string) ([]*Listing, error)
}

// Service handles group directory and membership business logic
type Service struct {
	store Store
}

// NewService creates a new group service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create generates a new group with a unique invitation code. The creator is
// not enrolled automatically; joining requires an explicit Join with the code.
func (s *Service) Create(ctx context.Context, name, description string) (*Group, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	code, err := s.uniqueInvitationCode(ctx)
	if err != nil {
		return nil, err
	}

	g := &Group{
		ID:             uuid.NewString(),
		Name:           name,
		Description:    description,
		InvitationCode: code,
	}
	if err := s.store.Create(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// uniqueInvitationCode generates codes until one does not collide with an
// existing group, bounded by maxCodeAttempts.
func (s *Service) uniqueInvitationCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newInvitationCode()
		if err != nil {
			return "", err
		}

		exists, err := s.store.InvitationCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("exhausted %d attempts to generate a unique invitation code", maxCodeAttempts)
}

// ResolveInvitationCode looks up the group holding the given code
func (s *Service) ResolveInvitationCode(ctx context.Context, code string) (*Group, error) {
	g, err := s.store.GetByInvitationCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// Join resolves the invitation code and enrolls the user in the group.
// Joining a group the user already belongs to succeeds and returns the
// existing membership row.
func (s *Service) Join(ctx context.Context, invitationCode, userID string) (*Membership, error) {
	g, err := s.ResolveInvitationCode(ctx, invitationCode)
	if err != nil {
		return nil, err
	}

	m := &Membership{
		ID:      uuid.NewString(),
		UserID:  userID,
		GroupID: g.ID,
	}
	err = s.store.AddMember(ctx, m)
	if errors.Is(err, ErrDuplicateMember) {
		existing, getErr := s.store.GetMember(ctx, g.ID, userID)
		if getErr != nil {
			return nil, getErr
		}
		if existing != nil {
			return existing, nil
		}
		// row vanished between insert and lookup; surface the conflict
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

// ListByUserID retrieves every group the user belongs to.
// Zero groups is a valid result, not an error.
func (s *Service) ListByUserID(ctx context.Context, userID string) ([]*Listing, error) {
	return s.store.ListByUserID(ctx, userID)
}

// Summary retrieves a group's descriptive fields together with its members
func (s *Service) Summary(ctx context.Context, groupID string) (*Group, []*Member, error) {
	g, err := s.store.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, ErrGroupNotFound
	}

	members, err := s.store.GetMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	return g, members, nil
}
