package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrDuplicateMember is returned by the store when a membership row for the
// same (user, group) pair already exists. The service treats it as an
// idempotent no-op, not a failure.
var ErrDuplicateMember = errors.New("user is already a member of this group")

// Repository handles group and membership persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group row
func (r *Repository) Create(ctx context.Context, g *Group) error {
	query := `
		INSERT INTO groupcollections (groupid, groupname, groupdescription, invitationcode)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, g.ID, g.Name, g.Description, g.InvitationCode); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := `
		SELECT groupid, groupname, groupdescription, invitationcode
		FROM groupcollections
		WHERE groupid = $1
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.Description, &g.InvitationCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

// GetByInvitationCode retrieves the group holding the given invitation code
func (r *Repository) GetByInvitationCode(ctx context.Context, code string) (*Group, error) {
	query := `
		SELECT groupid, groupname, groupdescription, invitationcode
		FROM groupcollections
		WHERE invitationcode = $1
	`

	g := &Group{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&g.ID, &g.Name, &g.Description, &g.InvitationCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group by invitation code: %w", err)
	}

	return g, nil
}

// InvitationCodeExists reports whether any group already holds the given code
func (r *Repository) InvitationCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM groupcollections WHERE invitationcode = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check invitation code: %w", err)
	}
	return exists, nil
}

// AddMember inserts a membership row. A unique constraint on (userid, groupid)
// guards against duplicate joins; violations surface as ErrDuplicateMember.
func (r *Repository) AddMember(ctx context.Context, m *Membership) error {
	query := `
		INSERT INTO groupmembers (memberid, userid, groupid)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.GroupID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// GetMember retrieves the membership row for a (group, user) pair
func (r *Repository) GetMember(ctx context.Context, groupID, userID string) (*Membership, error) {
	query := `
		SELECT memberid, userid, groupid
		FROM groupmembers
		WHERE groupid = $1 AND userid = $2
	`

	m := &Membership{}
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&m.ID, &m.UserID, &m.GroupID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return m, nil
}

// GetMembers retrieves all members of a group with their usernames
func (r *Repository) GetMembers(ctx context.Context, groupID string) ([]*Member, error) {
	query := `
		SELECT u.userid, u.username
		FROM groupmembers gm
		JOIN users u ON gm.userid = u.userid
		WHERE gm.groupid = $1
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.UserID, &m.Username); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// ListByUserID retrieves all groups a user belongs to
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*Listing, error) {
	query := `
		SELECT gc.groupid, gc.groupname
		FROM groupmembers gm
		JOIN groupcollections gc ON gm.groupid = gc.groupid
		WHERE gm.userid = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var listings []*Listing
	for rows.Next() {
		l := &Listing{}
		if err := rows.Scan(&l.GroupID, &l.GroupName); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// MemberUserIDs retrieves the user ids of every member of a group.
// The realtime fan-out uses this to scope pushes to group members.
func (r *Repository) MemberUserIDs(ctx context.Context, groupID string) ([]string, error) {
	query := `SELECT userid FROM groupmembers WHERE groupid = $1`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
