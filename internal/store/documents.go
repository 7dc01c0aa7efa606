package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Document struct {
	ID          string    `db:"id"`
	TenantID    string    `db:"tenant_id"`
	ProjectID   string    `db:"project_id"`
	Title       string    `db:"title"`
	FileURL     string    `db:"file_url"`
	ContentType string    `db:"content_type"`
	CreatedBy   string    `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

type DocumentStore struct {
	db *sqlx.DB
}

func NewDocumentStore(db *sqlx.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) q(query string) string { return s.db.Rebind(query) }

func (s *DocumentStore) Create(ctx context.Context, tenantID, projectID, title, fileURL, contentType, createdBy string) (*Document, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO documents (id, tenant_id, project_id, title, file_url, content_type, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), id, tenantID, projectID, title, fileURL, contentType, createdBy, now)
	if err != nil {
		return nil, err
	}
	var d Document
	if err := s.db.GetContext(ctx, &d, s.q(`SELECT * FROM documents WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByProject returns the documents of one project within one tenant.
func (s *DocumentStore) ListByProject(ctx context.Context, tenantID, projectID string) ([]*Document, error) {
	var docs []*Document
	err := s.db.SelectContext(ctx, &docs, s.q(`
		SELECT * FROM documents WHERE tenant_id = ? AND project_id = ? ORDER BY created_at DESC
	`), tenantID, projectID)
	if err != nil {
		return nil, err
	}
	return docs, nil
}
