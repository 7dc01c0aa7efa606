package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Tenant struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}

type TenantStore struct {
	db *sqlx.DB
}

func NewTenantStore(db *sqlx.DB) *TenantStore {
	return &TenantStore{db: db}
}

func (s *TenantStore) q(query string) string { return s.db.Rebind(query) }

func (s *TenantStore) Create(ctx context.Context, name, slug string) (*Tenant, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO tenants (id, name, slug, created_at) VALUES (?, ?, ?, ?)
	`), id, name, slug, now)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *TenantStore) GetByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := s.db.GetContext(ctx, &t, s.q(`SELECT * FROM tenants WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListAll returns every tenant. Platform administration only; tenant members
// must never see tenants other than their own.
func (s *TenantStore) ListAll(ctx context.Context) ([]*Tenant, error) {
	var tenants []*Tenant
	err := s.db.SelectContext(ctx, &tenants, `SELECT * FROM tenants ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return tenants, nil
}
