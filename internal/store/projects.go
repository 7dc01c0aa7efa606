package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Project struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ProjectStore manages project rows. Every query is scoped by tenant_id so a
// row can never be read or written through another tenant's request.
type ProjectStore struct {
	db *sqlx.DB
}

func NewProjectStore(db *sqlx.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) q(query string) string { return s.db.Rebind(query) }

func (s *ProjectStore) Create(ctx context.Context, tenantID, name, address string) (*Project, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO projects (id, tenant_id, name, address, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'active', ?, ?)
	`), id, tenantID, name, address, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, id)
}

// GetByID returns the project only if it belongs to tenantID; a project in
// another tenant is indistinguishable from a missing one.
func (s *ProjectStore) GetByID(ctx context.Context, tenantID, id string) (*Project, error) {
	var p Project
	err := s.db.GetContext(ctx, &p, s.q(`
		SELECT * FROM projects WHERE tenant_id = ? AND id = ?
	`), tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectStore) ListByTenant(ctx context.Context, tenantID string) ([]*Project, error) {
	var projects []*Project
	err := s.db.SelectContext(ctx, &projects, s.q(`
		SELECT * FROM projects WHERE tenant_id = ? ORDER BY name ASC
	`), tenantID)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectStore) Update(ctx context.Context, tenantID, id, name, address, status string) (*Project, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE projects SET name = ?, address = ?, status = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?
	`), name, address, status, time.Now().UTC(), tenantID, id)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, tenantID, id)
}

func (s *ProjectStore) Delete(ctx context.Context, tenantID, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM projects WHERE tenant_id = ? AND id = ?
	`), tenantID, id)
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
