package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrMissingFields is returned when required assignment fields are absent
var ErrMissingFields = errors.New("missing required assignment fields")

// Store is the persistence boundary for assignments
type Store interface {
	Create(ctx context.Context, a *Assignment) error
	ListByUserID(ctx context.Context, userID string) ([]*Assignment, error)
}

// Service handles assignment business logic
type Service struct {
	store Store
}

// NewService creates a new assignment service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create stores a new assignment. Completion percentage always starts at zero.
func (s *Service) Create(ctx context.Context, userID, name, module string, dueDate time.Time, timeDueSeconds, timeNeeded int) (*Assignment, error) {
	if userID == "" || name == "" || module == "" {
		return nil, ErrMissingFields
	}

	a := &Assignment{
		ID:             uuid.NewString(),
		Name:           name,
		Module:         module,
		Percentage:     0,
		DueDate:        dueDate,
		TimeDueSeconds: timeDueSeconds,
		TimeNeeded:     timeNeeded,
		UserID:         userID,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByUserID retrieves all assignments for a user.
// Zero assignments is a valid result, not an error.
func (s *Service) ListByUserID(ctx context.Context, userID string) ([]*Assignment, error) {
	return s.store.ListByUserID(ctx, userID)
}
