package notification

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles notification preference persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// UpdateColumn sets one preference column for a user and returns the updated
// set of flags. column must come from the package whitelist.
func (r *Repository) UpdateColumn(ctx context.Context, userID, column string, value bool) (*Preferences, error) {
	query := fmt.Sprintf(`
		UPDATE users SET %s = $1
		WHERE userid = $2
		RETURNING userid, notification, tasknotification, classnotification, groupnotification, privatenotification
	`, column)

	p := &Preferences{}
	err := r.db.QueryRowContext(ctx, query, value, userID).Scan(
		&p.UserID,
		&p.Notification,
		&p.TaskNotification,
		&p.ClassNotification,
		&p.GroupNotification,
		&p.PrivateNotification,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update notification preference: %w", err)
	}

	return p, nil
}
