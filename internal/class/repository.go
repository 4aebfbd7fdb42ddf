package class

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles class data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new class repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new class row
func (r *Repository) Create(ctx context.Context, c *Class) error {
	query := `
		INSERT INTO class (classid, userid, modulename, classtype, classlocation,
			startdate, starttime, enddate, endtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.ModuleName, c.Type, c.Location,
		c.StartDate, c.StartSeconds, c.EndDate, c.EndSeconds)
	if err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

// ListByUserID retrieves all classes for a user
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*Class, error) {
	query := `
		SELECT classid, userid, modulename, classtype, classlocation,
			startdate, starttime, enddate, endtime
		FROM class
		WHERE userid = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	var classes []*Class
	for rows.Next() {
		c := &Class{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.ModuleName, &c.Type, &c.Location,
			&c.StartDate, &c.StartSeconds, &c.EndDate, &c.EndSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, c)
	}

	return classes, rows.Err()
}
