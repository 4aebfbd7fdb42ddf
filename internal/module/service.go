package module

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrMissingFields is returned when required module fields are absent
var ErrMissingFields = errors.New("missing required module fields")

// Store is the persistence boundary for course modules
type Store interface {
	Create(ctx context.Context, m *Module) error
	ListByUserID(ctx context.Context, userID string) ([]*Module, error)
}

// Service handles course module business logic
type Service struct {
	store Store
}

// NewService creates a new module service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create stores a new module entry
func (s *Service) Create(ctx context.Context, m *Module) (*Module, error) {
	if m.UserID == "" || m.Name == "" {
		return nil, ErrMissingFields
	}

	m.ID = uuid.NewString()
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListByUserID retrieves all modules for a user.
// Zero modules is a valid result, not an error.
func (s *Service) ListByUserID(ctx context.Context, userID string) ([]*Module, error) {
	return s.store.ListByUserID(ctx, userID)
}
