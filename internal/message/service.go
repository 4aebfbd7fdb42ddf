package message

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrMissingFields = errors.New("missing required fields: groupid, userid, and messagecontent are all required")
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
)

// Store is the persistence boundary for the message log
type Store interface {
	Append(ctx context.Context, m *Message) error
	ListByGroup(ctx context.Context, groupID string) ([]*Message, error)
	GroupExists(ctx context.Context, groupID string) (bool, error)
	AuthorUsername(ctx context.Context, userID string) (string, error)
}

// MemberDirectory resolves the member set a new message fans out to
type MemberDirectory interface {
	MemberUserIDs(ctx context.Context, groupID string) ([]string, error)
}

// Publisher mirrors a freshly appended message to connected group members.
// Delivery is best-effort; the durable log is the source of truth.
type Publisher interface {
	PublishChat(groupID, messageID, sender, content string, userIDs []string)
}

// Service handles message log business logic
type Service struct {
	store     Store
	members   MemberDirectory
	publisher Publisher
}

// NewService creates a new message service. publisher may be nil, in which
// case appended messages are only reachable through the durable log.
func NewService(store Store, members MemberDirectory, publisher Publisher) *Service {
	return &Service{store: store, members: members, publisher: publisher}
}

// Append validates the references, assigns identifiers and timestamps, writes
// the message durably, and fans it out to connected group members.
func (s *Service) Append(ctx context.Context, groupID, userID, content string) (*Message, error) {
	if groupID == "" || userID == "" || content == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.store.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	username, err := s.store.AuthorUsername(ctx, userID)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	m := &Message{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		UserID:      userID,
		Content:     content,
		SentSeconds: now.Hour()*3600 + now.Minute()*60 + now.Second(),
		Username:    username,
	}
	if err := s.store.Append(ctx, m); err != nil {
		return nil, err
	}

	s.fanOut(ctx, m)
	return m, nil
}

// fanOut pushes the message to currently connected members. Failures are
// logged and swallowed: members who miss the push catch up on the next pull.
func (s *Service) fanOut(ctx context.Context, m *Message) {
	if s.publisher == nil {
		return
	}

	userIDs, err := s.members.MemberUserIDs(ctx, m.GroupID)
	if err != nil {
		log.Printf("Skipping realtime fan-out for message %s: %v", m.ID, err)
		return
	}

	s.publisher.PublishChat(m.GroupID, m.ID, m.Username, m.Content, userIDs)
}

// ListByGroup retrieves a group's full message history in chronological
// order. Zero messages is a valid result, not an error.
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]*Message, error) {
	return s.store.ListByGroup(ctx, groupID)
}
