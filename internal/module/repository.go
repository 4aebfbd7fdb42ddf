package module

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles course module persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new module repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new module row
func (r *Repository) Create(ctx context.Context, m *Module) error {
	query := `
		INSERT INTO modules (moduleid, modulename, moduletitle, credits, instructor, userid)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Title, m.Credits, m.Instructor, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	return nil
}

// ListByUserID retrieves all modules for a user
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*Module, error) {
	query := `
		SELECT moduleid, modulename, moduletitle, credits, instructor, userid
		FROM modules
		WHERE userid = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	defer rows.Close()

	var modules []*Module
	for rows.Next() {
		m := &Module{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Title, &m.Credits, &m.Instructor, &m.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		modules = append(modules, m)
	}

	return modules, rows.Err()
}
