package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Membership statuses. Anything other than active is treated as "no
// membership" by the tenant resolver.
const (
	MembershipActive   = "active"
	MembershipInvited  = "invited"
	MembershipDisabled = "disabled"
)

// Membership binds a user to a tenant with a role. The (tenant_id, user_id)
// pair is the primary key; a user holds at most one role per tenant.
type Membership struct {
	TenantID  string    `db:"tenant_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type MembershipStore struct {
	db *sqlx.DB
}

func NewMembershipStore(db *sqlx.DB) *MembershipStore {
	return &MembershipStore{db: db}
}

func (s *MembershipStore) q(query string) string { return s.db.Rebind(query) }

// Add creates a membership. Returns ErrAlreadyMember if the pair exists.
func (s *MembershipStore) Add(ctx context.Context, tenantID, userID, role, status string) (*Membership, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO memberships (tenant_id, user_id, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), tenantID, userID, role, status, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return s.Get(ctx, tenantID, userID)
}

// Get returns the membership for (tenantID, userID), or ErrNotFound.
func (s *MembershipStore) Get(ctx context.Context, tenantID, userID string) (*Membership, error) {
	var m Membership
	err := s.db.GetContext(ctx, &m, s.q(`
		SELECT * FROM memberships WHERE tenant_id = ? AND user_id = ?
	`), tenantID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MemberInfo is a membership joined with its user record.
type MemberInfo struct {
	User
	Role   string `db:"role"`
	Status string `db:"status"`
}

// ListByTenant returns all members of a tenant with their user details.
func (s *MembershipStore) ListByTenant(ctx context.Context, tenantID string) ([]*MemberInfo, error) {
	var members []*MemberInfo
	err := s.db.SelectContext(ctx, &members, s.q(`
		SELECT u.*, m.role, m.status FROM users u
		INNER JOIN memberships m ON m.user_id = u.id
		WHERE m.tenant_id = ?
		ORDER BY u.display_name ASC
	`), tenantID)
	if err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateRole sets the role for a membership. Returns ErrNotFound if the
// membership does not exist.
func (s *MembershipStore) UpdateRole(ctx context.Context, tenantID, userID, role string) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE memberships SET role = ?, updated_at = ? WHERE tenant_id = ? AND user_id = ?
	`), role, time.Now().UTC(), tenantID, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes a membership. Returns ErrNotFound if the membership does not exist.
func (s *MembershipStore) Remove(ctx context.Context, tenantID, userID string) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM memberships WHERE tenant_id = ? AND user_id = ?
	`), tenantID, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
