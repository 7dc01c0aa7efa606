package share

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/siteworkhq/sitework/internal/store"
)

// Link is a row in the share_links table. Rows are never hard-deleted;
// revocation sets revoked_at and is terminal.
type Link struct {
	ID             string         `db:"id"`
	TenantID       string         `db:"tenant_id"`
	ProjectID      string         `db:"project_id"`
	TokenHash      string         `db:"token_hash"`
	PasswordHash   sql.NullString `db:"password_hash"`
	Scope          string         `db:"scope"`
	CreatedBy      string         `db:"created_by"`
	CreatedAt      time.Time      `db:"created_at"`
	ExpiresAt      sql.NullTime   `db:"expires_at"`
	RevokedAt      sql.NullTime   `db:"revoked_at"`
	LastAccessedAt sql.NullTime   `db:"last_accessed_at"`
}

// ScopeKinds parses the stored comma-separated scope column.
func (l *Link) ScopeKinds() []ScopeKind {
	parts := strings.Split(l.Scope, ",")
	kinds := make([]ScopeKind, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kinds = append(kinds, ScopeKind(p))
		}
	}
	return kinds
}

// Store is the sqlx-backed persistence for share links.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *Store) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new share link row. passwordHash and expiresAt may be nil.
func (s *Store) Create(ctx context.Context, tenantID, projectID, tokenHash string, passwordHash *string, scope []ScopeKind, createdBy string, expiresAt *time.Time) (*Link, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	var pw sql.NullString
	if passwordHash != nil {
		pw = sql.NullString{String: *passwordHash, Valid: true}
	}
	var exp sql.NullTime
	if expiresAt != nil {
		exp = sql.NullTime{Time: *expiresAt, Valid: true}
	}

	scopes := make([]string, len(scope))
	for i, k := range scope {
		scopes[i] = string(k)
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO share_links (id, tenant_id, project_id, token_hash, password_hash, scope, created_by, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), id, tenantID, projectID, tokenHash, pw, strings.Join(scopes, ","), createdBy, now, exp)
	if err != nil {
		return nil, err
	}

	var l Link
	if err := s.db.GetContext(ctx, &l, s.q(`SELECT * FROM share_links WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByTokenHash returns the link matching the given hash, or store.ErrNotFound.
func (s *Store) GetByTokenHash(ctx context.Context, hash string) (*Link, error) {
	var l Link
	err := s.db.GetContext(ctx, &l, s.q(`SELECT * FROM share_links WHERE token_hash = ?`), hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID returns the link only if it belongs to tenantID, or store.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, tenantID, id string) (*Link, error) {
	var l Link
	err := s.db.GetContext(ctx, &l, s.q(`
		SELECT * FROM share_links WHERE tenant_id = ? AND id = ?
	`), tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByProject returns all links for one project within one tenant, newest first.
func (s *Store) ListByProject(ctx context.Context, tenantID, projectID string) ([]*Link, error) {
	var links []*Link
	err := s.db.SelectContext(ctx, &links, s.q(`
		SELECT * FROM share_links WHERE tenant_id = ? AND project_id = ? ORDER BY created_at DESC
	`), tenantID, projectID)
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Revoke sets revoked_at on the link. Revoking an already-revoked link is a
// no-op success; revocation is never undone.
func (s *Store) Revoke(ctx context.Context, tenantID, id string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE share_links SET revoked_at = ? WHERE tenant_id = ? AND id = ? AND revoked_at IS NULL
	`), now, tenantID, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}
	// Nothing updated: either already revoked (idempotent success) or absent.
	_, err = s.GetByID(ctx, tenantID, id)
	return err
}

// UpdateLastAccessed records a successful portal validation.
func (s *Store) UpdateLastAccessed(ctx context.Context, id string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		UPDATE share_links SET last_accessed_at = ? WHERE id = ?
	`), now, id)
	return err
}
