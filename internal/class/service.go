package class

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrMissingFields is returned when required class fields are absent
var ErrMissingFields = errors.New("missing required class fields")

// Store is the persistence boundary for classes
type Store interface {
	Create(ctx context.Context, c *Class) error
	ListByUserID(ctx context.Context, userID string) ([]*Class, error)
}

// Service handles class business logic
type Service struct {
	store Store
}

// NewService creates a new class service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create stores a new class entry
func (s *Service) Create(ctx context.Context, c *Class) (*Class, error) {
	if c.UserID == "" || c.ModuleName == "" || c.Type == "" {
		return nil, ErrMissingFields
	}

	c.ID = uuid.NewString()
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByUserID retrieves all classes for a user.
// Zero classes is a valid result, not an error.
func (s *Service) ListByUserID(ctx context.Context, userID string) ([]*Class, error) {
	return s.store.ListByUserID(ctx, userID)
}
