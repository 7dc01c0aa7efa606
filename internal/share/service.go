// Package share issues, validates, and revokes anonymous portal access
// tokens. It is a separate trust boundary from authenticated tenant access:
// the only credential is the token (plus an optional password), and a
// validated token yields read-only access to one project's shared resources.
package share

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/metrics"
	"github.com/siteworkhq/sitework/internal/rbac"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
)

// ScopeKind names a sub-resource kind a link may expose.
type ScopeKind string

const (
	ScopeProjectDetails ScopeKind = "project_details"
	ScopeDocuments      ScopeKind = "documents"
	ScopePhotos         ScopeKind = "photos"
)

// DefaultExpiry is applied when a link is generated without an explicit
// expiry. Links never live forever by default.
const DefaultExpiry = 30 * 24 * time.Hour

// ValidKind reports whether k is a known scope kind.
func ValidKind(k ScopeKind) bool {
	switch k {
	case ScopeProjectDetails, ScopeDocuments, ScopePhotos:
		return true
	}
	return false
}

// Context is the read-only grant attached to a validated portal request.
// It is deliberately not a tenant.Context: it carries no user, no role, and
// no write permission of any kind.
type Context struct {
	LinkID    string
	ProjectID string
	TenantID  string
	scope     map[ScopeKind]struct{}
}

// Allows reports whether the validated link's scope covers kind.
func (c *Context) Allows(kind ScopeKind) bool {
	_, ok := c.scope[kind]
	return ok
}

// ProjectDirectory is the subset of the project store the service needs.
type ProjectDirectory interface {
	GetByID(ctx context.Context, tenantID, id string) (*store.Project, error)
}

// GenerateOptions are the creator-supplied knobs for a new link.
type GenerateOptions struct {
	Scope     []ScopeKind
	Password  string     // empty means no password gate
	ExpiresAt *time.Time // nil applies DefaultExpiry
}

// Service implements the share-link lifecycle on top of Store.
type Service struct {
	links    *Store
	projects ProjectDirectory
	now      func() time.Time
}

func NewService(links *Store, projects ProjectDirectory) *Service {
	return &Service{links: links, projects: projects, now: time.Now}
}

// Generate creates a share link for a project in the requester's tenant and
// returns the plaintext token. The token is returned exactly once; only its
// hash is stored, so it cannot be re-derived later.
func (s *Service) Generate(ctx context.Context, requester *tenant.Context, projectID string, opts GenerateOptions) (string, *Link, error) {
	if requester == nil || !requester.Can(rbac.ResourceProjects, rbac.ActionUpdate) {
		return "", nil, apperr.Forbidden("permission denied")
	}

	if len(opts.Scope) == 0 {
		return "", nil, apperr.Validation("share scope must not be empty")
	}
	for _, k := range opts.Scope {
		if !ValidKind(k) {
			return "", nil, apperr.Validation("unknown share scope: " + string(k))
		}
	}

	if _, err := s.projects.GetByID(ctx, requester.TenantID, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, apperr.NotFound("project not found")
		}
		return "", nil, apperr.Internal(err)
	}

	plaintext, hash, err := GenerateToken()
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	var passwordHash *string
	if opts.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
		if err != nil {
			return "", nil, apperr.Internal(err)
		}
		hs := string(h)
		passwordHash = &hs
	}

	expiresAt := opts.ExpiresAt
	if expiresAt == nil {
		t := s.now().UTC().Add(DefaultExpiry)
		expiresAt = &t
	}

	link, err := s.links.Create(ctx, requester.TenantID, projectID, hash, passwordHash, opts.Scope, requester.UserID, expiresAt)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	metrics.ShareLinksIssuedTotal.Inc()
	return plaintext, link, nil
}

// errLinkNotFound is the single error shape for every validation failure.
// Wrong token, revoked, expired, and bad password are indistinguishable so a
// prober learns nothing about whether a link exists.
func errLinkNotFound() *apperr.Error {
	return apperr.NotFound("share link not found")
}

// Validate checks a portal token (and password, when the link demands one)
// and returns the scoped read-only context. All failures share one shape.
func (s *Service) Validate(ctx context.Context, token, password string) (*Context, error) {
	link, err := s.links.GetByTokenHash(ctx, HashToken(token))
	if errors.Is(err, store.ErrNotFound) {
		metrics.ShareValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, errLinkNotFound()
	}
	if err != nil {
		metrics.ShareValidationsTotal.WithLabelValues("error").Inc()
		return nil, apperr.Internal(err)
	}

	if link.RevokedAt.Valid {
		metrics.ShareValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, errLinkNotFound()
	}
	if link.ExpiresAt.Valid && !s.now().Before(link.ExpiresAt.Time) {
		metrics.ShareValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, errLinkNotFound()
	}
	if link.PasswordHash.Valid {
		if bcrypt.CompareHashAndPassword([]byte(link.PasswordHash.String), []byte(password)) != nil {
			metrics.ShareValidationsTotal.WithLabelValues("rejected").Inc()
			return nil, errLinkNotFound()
		}
	}

	// Access logging is best-effort and must not delay the portal response.
	go func(id string) {
		if err := s.links.UpdateLastAccessed(context.Background(), id); err != nil {
			log.Printf("share access log error: %v", err)
		}
	}(link.ID)

	scope := make(map[ScopeKind]struct{})
	for _, k := range link.ScopeKinds() {
		scope[k] = struct{}{}
	}

	metrics.ShareValidationsTotal.WithLabelValues("ok").Inc()
	return &Context{
		LinkID:    link.ID,
		ProjectID: link.ProjectID,
		TenantID:  link.TenantID,
		scope:     scope,
	}, nil
}

// Revoke marks a link unusable. Revoking an already-revoked link succeeds;
// there is no way back to active.
func (s *Service) Revoke(ctx context.Context, requester *tenant.Context, linkID string) error {
	if requester == nil || !requester.Can(rbac.ResourceProjects, rbac.ActionUpdate) {
		return apperr.Forbidden("permission denied")
	}

	err := s.links.Revoke(ctx, requester.TenantID, linkID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("share link not found")
	}
	if err != nil {
		return apperr.Internal(err)
	}

	metrics.ShareRevocationsTotal.Inc()
	return nil
}

// ListForProject returns link metadata for a project. Token hashes and
// password hashes stay out of API responses; the api layer maps from Link.
func (s *Service) ListForProject(ctx context.Context, requester *tenant.Context, projectID string) ([]*Link, error) {
	if requester == nil || !requester.Can(rbac.ResourceProjects, rbac.ActionRead) {
		return nil, apperr.Forbidden("permission denied")
	}

	if _, err := s.projects.GetByID(ctx, requester.TenantID, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, apperr.Internal(err)
	}

	links, err := s.links.ListByProject(ctx, requester.TenantID, projectID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return links, nil
}
