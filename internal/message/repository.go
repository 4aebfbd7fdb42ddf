package message

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles message log persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new message repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts a message row. The sent date comes from the database clock
// so ordering keys stay consistent even when callers have skewed clocks.
func (r *Repository) Append(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO messagecollections (messageid, groupid, userid, messagecontent, datesent, timesent)
		VALUES ($1, $2, $3, $4, NOW(), $5)
		RETURNING datesent
	`

	err := r.db.QueryRowContext(ctx, query, m.ID, m.GroupID, m.UserID, m.Content, m.SentSeconds).Scan(&m.SentDate)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// ListByGroup retrieves a group's messages in chronological order
func (r *Repository) ListByGroup(ctx context.Context, groupID string) ([]*Message, error) {
	query := `
		SELECT m.messageid, m.groupid, m.userid, m.messagecontent, m.datesent, m.timesent, u.username
		FROM messagecollections m
		JOIN users u ON m.userid = u.userid
		WHERE m.groupid = $1
		ORDER BY m.datesent ASC, m.timesent ASC, m.messageid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Content, &m.SentDate, &m.SentSeconds, &m.Username); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// GroupExists reports whether the referenced group exists
func (r *Repository) GroupExists(ctx context.Context, groupID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM groupcollections WHERE groupid = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, groupID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return exists, nil
}

// AuthorUsername retrieves the username of the referenced user, or "" when
// the user does not exist
func (r *Repository) AuthorUsername(ctx context.Context, userID string) (string, error) {
	query := `SELECT username FROM users WHERE userid = $1`

	var username string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&username)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get author: %w", err)
	}
	return username, nil
}
