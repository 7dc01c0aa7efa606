package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Photo struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	ProjectID string    `db:"project_id"`
	Caption   string    `db:"caption"`
	FileURL   string    `db:"file_url"`
	CreatedBy string    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

type PhotoStore struct {
	db *sqlx.DB
}

func NewPhotoStore(db *sqlx.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

func (s *PhotoStore) q(query string) string { return s.db.Rebind(query) }

func (s *PhotoStore) Create(ctx context.Context, tenantID, projectID, caption, fileURL, createdBy string) (*Photo, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO photos (id, tenant_id, project_id, caption, file_url, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), id, tenantID, projectID, caption, fileURL, createdBy, now)
	if err != nil {
		return nil, err
	}
	var p Photo
	if err := s.db.GetContext(ctx, &p, s.q(`SELECT * FROM photos WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByProject returns the photos of one project within one tenant.
func (s *PhotoStore) ListByProject(ctx context.Context, tenantID, projectID string) ([]*Photo, error) {
	var photos []*Photo
	err := s.db.SelectContext(ctx, &photos, s.q(`
		SELECT * FROM photos WHERE tenant_id = ? AND project_id = ? ORDER BY created_at DESC
	`), tenantID, projectID)
	if err != nil {
		return nil, err
	}
	return photos, nil
}
