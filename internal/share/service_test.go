package share_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/rbac"
	"github.com/siteworkhq/sitework/internal/share"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
	"github.com/siteworkhq/sitework/internal/testutil"
)

type serviceEnv struct {
	Service  *share.Service
	Links    *share.Store
	Projects *store.ProjectStore
	Tenants  *store.TenantStore
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	links := share.NewStore(db)
	projects := store.NewProjectStore(db)
	return &serviceEnv{
		Service:  share.NewService(links, projects),
		Links:    links,
		Projects: projects,
		Tenants:  store.NewTenantStore(db),
	}
}

// seedProject creates a tenant and a project inside it.
func seedProject(t *testing.T, env *serviceEnv, slug string) (tenantID, projectID string) {
	t.Helper()
	ctx := context.Background()
	tn, err := env.Tenants.Create(ctx, "Tenant "+slug, slug)
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	p, err := env.Projects.Create(ctx, tn.ID, "Project "+slug, "123 Main St")
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return tn.ID, p.ID
}

func requester(tenantID string, role rbac.Role) *tenant.Context {
	return &tenant.Context{
		UserID:      "u-creator",
		TenantID:    tenantID,
		Role:        role,
		Permissions: rbac.PermissionsFor(role),
	}
}

func allScopes() []share.ScopeKind {
	return []share.ScopeKind{share.ScopeProjectDetails, share.ScopeDocuments, share.ScopePhotos}
}

func TestGenerate_HashOnlyStorage(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	ctx := context.Background()

	token, link, err := env.Service.Generate(ctx, requester(tenantID, rbac.RoleAdmin), projectID, share.GenerateOptions{
		Scope: allScopes(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(token, "swp_") {
		t.Errorf("token %q missing prefix", token)
	}
	if link.TokenHash == token || strings.Contains(link.TokenHash, token) {
		t.Error("stored hash must not contain the plaintext token")
	}
	if link.TokenHash != share.HashToken(token) {
		t.Error("stored hash should be the SHA-256 of the plaintext")
	}

	// Default expiry applies when the caller gives none.
	if !link.ExpiresAt.Valid {
		t.Fatal("expires_at should be set by default")
	}
	until := time.Until(link.ExpiresAt.Time)
	if until < 29*24*time.Hour || until > 31*24*time.Hour {
		t.Errorf("default expiry %v from now, want ~30 days", until)
	}
}

func TestGenerate_RequiresProjectUpdatePermission(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")

	_, _, err := env.Service.Generate(context.Background(), requester(tenantID, rbac.RoleMember), projectID, share.GenerateOptions{
		Scope: allScopes(),
	})
	if apperr.From(err).Kind != apperr.KindForbidden {
		t.Errorf("member generate: kind = %v, want forbidden", apperr.From(err).Kind)
	}

	_, _, err = env.Service.Generate(context.Background(), nil, projectID, share.GenerateOptions{Scope: allScopes()})
	if apperr.From(err).Kind != apperr.KindForbidden {
		t.Error("nil requester must be denied")
	}
}

func TestGenerate_ScopeValidation(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	ctx := context.Background()

	_, _, err := env.Service.Generate(ctx, requester(tenantID, rbac.RoleAdmin), projectID, share.GenerateOptions{})
	if apperr.From(err).Kind != apperr.KindValidation {
		t.Errorf("empty scope: kind = %v, want validation", apperr.From(err).Kind)
	}

	_, _, err = env.Service.Generate(ctx, requester(tenantID, rbac.RoleAdmin), projectID, share.GenerateOptions{
		Scope: []share.ScopeKind{"billing"},
	})
	if apperr.From(err).Kind != apperr.KindValidation {
		t.Errorf("unknown scope: kind = %v, want validation", apperr.From(err).Kind)
	}
}

func TestGenerate_CrossTenantProjectDenied(t *testing.T) {
	env := newServiceEnv(t)
	_, projectID := seedProject(t, env, "acme")
	otherTenant, _ := seedProject(t, env, "rival")

	// An admin of another tenant cannot share a project they cannot see.
	_, _, err := env.Service.Generate(context.Background(), requester(otherTenant, rbac.RoleAdmin), projectID, share.GenerateOptions{
		Scope: allScopes(),
	})
	if apperr.From(err).Kind != apperr.KindNotFound {
		t.Errorf("cross-tenant generate: kind = %v, want not found", apperr.From(err).Kind)
	}
}

// assertLinkNotFound verifies the single indistinguishable failure shape.
func assertLinkNotFound(t *testing.T, err error) {
	t.Helper()
	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *apperr.Error, got %T: %v", err, err)
	}
	if e.Kind != apperr.KindNotFound || e.Message != "share link not found" {
		t.Errorf("failure shape = (%v, %q), want (not found, share link not found)", e.Kind, e.Message)
	}
}

func TestValidate_IndistinguishableFailures(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	ctx := context.Background()
	admin := requester(tenantID, rbac.RoleAdmin)

	// Wrong token.
	_, err := env.Service.Validate(ctx, "swp_definitely-not-a-token", "")
	assertLinkNotFound(t, err)

	// Revoked link.
	tokenA, linkA, err := env.Service.Generate(ctx, admin, projectID, share.GenerateOptions{Scope: allScopes()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := env.Service.Revoke(ctx, admin, linkA.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	_, err = env.Service.Validate(ctx, tokenA, "")
	assertLinkNotFound(t, err)

	// Expired link.
	past := time.Now().UTC().Add(-time.Hour)
	tokenB, _, err := env.Service.Generate(ctx, admin, projectID, share.GenerateOptions{
		Scope:     allScopes(),
		ExpiresAt: &past,
	})
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	_, err = env.Service.Validate(ctx, tokenB, "")
	assertLinkNotFound(t, err)

	// Wrong password.
	tokenC, _, err := env.Service.Generate(ctx, admin, projectID, share.GenerateOptions{
		Scope:    allScopes(),
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("generate protected: %v", err)
	}
	_, err = env.Service.Validate(ctx, tokenC, "wrong")
	assertLinkNotFound(t, err)
	_, err = env.Service.Validate(ctx, tokenC, "")
	assertLinkNotFound(t, err)
}

func TestValidate_Success(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	ctx := context.Background()

	token, _, err := env.Service.Generate(ctx, requester(tenantID, rbac.RoleAdmin), projectID, share.GenerateOptions{
		Scope: []share.ScopeKind{share.ScopeDocuments},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sc, err := env.Service.Validate(ctx, token, "")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sc.TenantID != tenantID || sc.ProjectID != projectID {
		t.Errorf("grant = (%s, %s), want (%s, %s)", sc.TenantID, sc.ProjectID, tenantID, projectID)
	}
	if !sc.Allows(share.ScopeDocuments) {
		t.Error("grant should cover documents")
	}
	if sc.Allows(share.ScopePhotos) || sc.Allows(share.ScopeProjectDetails) {
		t.Error("grant must not cover kinds outside the link's scope")
	}
}

func TestValidate_PasswordProtected(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	ctx := context.Background()

	token, link, err := env.Service.Generate(ctx, requester(tenantID, rbac.RoleAdmin), projectID, share.GenerateOptions{
		Scope:    allScopes(),
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !link.PasswordHash.Valid {
		t.Fatal("password hash should be stored")
	}
	if link.PasswordHash.String == "hunter2" {
		t.Fatal("password must be stored hashed")
	}

	if _, err := env.Service.Validate(ctx, token, "hunter2"); err != nil {
		t.Fatalf("validate with correct password: %v", err)
	}
}

func TestRevoke_IdempotentAndTerminal(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	ctx := context.Background()
	admin := requester(tenantID, rbac.RoleAdmin)

	token, link, err := env.Service.Generate(ctx, admin, projectID, share.GenerateOptions{Scope: allScopes()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if err := env.Service.Revoke(ctx, admin, link.ID); err != nil {
		t.Fatalf("first revoke: %v", err)
	}
	// Second revoke succeeds without reactivating anything.
	if err := env.Service.Revoke(ctx, admin, link.ID); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
	_, err = env.Service.Validate(ctx, token, "")
	assertLinkNotFound(t, err)

	// Unknown link is a real not-found for the authenticated caller.
	err = env.Service.Revoke(ctx, admin, "no-such-link")
	if apperr.From(err).Kind != apperr.KindNotFound {
		t.Errorf("revoke missing: kind = %v, want not found", apperr.From(err).Kind)
	}
}

func TestRevoke_CrossTenantDenied(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	otherTenant, _ := seedProject(t, env, "rival")
	ctx := context.Background()

	token, link, err := env.Service.Generate(ctx, requester(tenantID, rbac.RoleAdmin), projectID, share.GenerateOptions{Scope: allScopes()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	err = env.Service.Revoke(ctx, requester(otherTenant, rbac.RoleAdmin), link.ID)
	if apperr.From(err).Kind != apperr.KindNotFound {
		t.Errorf("cross-tenant revoke: kind = %v, want not found", apperr.From(err).Kind)
	}

	// The link still works.
	if _, err := env.Service.Validate(ctx, token, ""); err != nil {
		t.Fatalf("link should survive a cross-tenant revoke attempt: %v", err)
	}
}

func TestListForProject(t *testing.T) {
	env := newServiceEnv(t)
	tenantID, projectID := seedProject(t, env, "acme")
	ctx := context.Background()
	admin := requester(tenantID, rbac.RoleAdmin)

	for i := 0; i < 3; i++ {
		if _, _, err := env.Service.Generate(ctx, admin, projectID, share.GenerateOptions{Scope: allScopes()}); err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
	}

	links, err := env.Service.ListForProject(ctx, admin, projectID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(links) != 3 {
		t.Errorf("got %d links, want 3", len(links))
	}

	// Members can read link metadata but never issue links.
	if _, err := env.Service.ListForProject(ctx, requester(tenantID, rbac.RoleMember), projectID); err != nil {
		t.Errorf("member list: %v", err)
	}
}
