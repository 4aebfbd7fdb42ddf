package assignment

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles assignment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new assignment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new assignment row
func (r *Repository) Create(ctx context.Context, a *Assignment) error {
	query := `
		INSERT INTO assignments (assignmentid, assignmentname, assignmentmodule, assignmentpercentage,
			assignmentduedate, assignmenttimeduedate, timeneeded, userid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Module, a.Percentage, a.DueDate, a.TimeDueSeconds, a.TimeNeeded, a.UserID)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// ListByUserID retrieves all assignments for a user
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*Assignment, error) {
	query := `
		SELECT assignmentid, assignmentname, assignmentmodule, assignmentpercentage,
			assignmentduedate, assignmenttimeduedate, timeneeded, userid
		FROM assignments
		WHERE userid = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*Assignment
	for rows.Next() {
		a := &Assignment{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Module, &a.Percentage,
			&a.DueDate, &a.TimeDueSeconds, &a.TimeNeeded, &a.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
