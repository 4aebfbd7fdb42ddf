package notification

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrInvalidField = errors.New("invalid notification field")
	ErrUserNotFound = errors.New("user not found")
)

// Store is the persistence boundary for preference updates
type Store interface {
	UpdateColumn(ctx context.Context, userID, column string, value bool) (*Preferences, error)
}

// Service handles notification preference updates
type Service struct {
	store Store
}

// NewService creates a new notification service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Update sets one preference field for a user. Field names outside the
// whitelist are rejected before touching the store.
func (s *Service) Update(ctx context.Context, userID, field string, value bool) (*Preferences, error) {
	column, ok := fieldColumns[field]
	if !ok {
		return nil, ErrInvalidField
	}

	p, err := s.store.UpdateColumn(ctx, userID, column, value)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrUserNotFound
	}
	return p, nil
}
