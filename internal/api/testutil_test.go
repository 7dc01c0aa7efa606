package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/siteworkhq/sitework/internal/api"
	"github.com/siteworkhq/sitework/internal/auth"
	"github.com/siteworkhq/sitework/internal/share"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
	"github.com/siteworkhq/sitework/internal/testutil"
)

// testEnv holds the full router and real stores for API integration tests.
type testEnv struct {
	Router          http.Handler
	Sessions        *scs.SessionManager
	UserStore       *store.UserStore
	TenantStore     *store.TenantStore
	MembershipStore *store.MembershipStore
	ProjectStore    *store.ProjectStore
	DocumentStore   *store.DocumentStore
	PhotoStore      *store.PhotoStore
	ShareService    *share.Service
}

// newTestEnv creates an in-memory SQLite test database, runs migrations, and
// wires up the full router with real stores and session-cookie auth. The
// resolver runs in production mode; dev-mode behavior is covered by the
// tenant package's own tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	sm := auth.NewSessionManager(db, "sqlite3", time.Hour)
	us := store.NewUserStore(db)
	ts := store.NewTenantStore(db)
	ms := store.NewMembershipStore(db)
	ps := store.NewProjectStore(db)
	ds := store.NewDocumentStore(db)
	phs := store.NewPhotoStore(db)
	shareService := share.NewService(share.NewStore(db), ps)

	resolver := tenant.NewResolver(us, ms, false)

	router := api.NewRouter(api.Deps{
		SessionManager:   sm,
		AuthHandlers:     auth.NewHandlers(nil, sm, us, ""),
		TenantMiddleware: tenant.NewMiddleware(sm, resolver),
		TenantStore:      ts,
		UserStore:        us,
		MembershipStore:  ms,
		ProjectStore:     ps,
		DocumentStore:    ds,
		PhotoStore:       phs,
		ShareService:     shareService,
	})

	return &testEnv{
		Router:          router,
		Sessions:        sm,
		UserStore:       us,
		TenantStore:     ts,
		MembershipStore: ms,
		ProjectStore:    ps,
		DocumentStore:   ds,
		PhotoStore:      phs,
		ShareService:    shareService,
	}
}

// seedUser creates a user. A non-empty superadminEmail matching the email
// bootstraps the platform superadmin flag.
func seedUser(t *testing.T, env *testEnv, email, superadminEmail string) *store.User {
	t.Helper()
	u, err := env.UserStore.Upsert(context.Background(), "test", "sub-"+email, email, "Test User", superadminEmail)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedTenant creates a tenant.
func seedTenant(t *testing.T, env *testEnv, slug string) *store.Tenant {
	t.Helper()
	tn, err := env.TenantStore.Create(context.Background(), "Tenant "+slug, slug)
	if err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return tn
}

// seedMember creates a user with an active membership in the tenant.
func seedMember(t *testing.T, env *testEnv, tenantID, email, role string) *store.User {
	t.Helper()
	u := seedUser(t, env, email, "")
	if _, err := env.MembershipStore.Add(context.Background(), tenantID, u.ID, role, store.MembershipActive); err != nil {
		t.Fatalf("seed membership: %v", err)
	}
	return u
}

// seedSession logs the user in by running a request through the real session
// middleware and capturing the issued cookie.
func seedSession(t *testing.T, env *testEnv, userID string) *http.Cookie {
	t.Helper()
	h := env.Sessions.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.Sessions.Put(r.Context(), auth.SessionUserIDKey, userID)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, c := range rec.Result().Cookies() {
		if c.Name == env.Sessions.Cookie.Name {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

// doJSON performs a request against the router. cookie and tenantID may be
// empty for anonymous or tenant-less requests.
func doJSON(t *testing.T, env *testEnv, method, path string, body any, cookie *http.Cookie, tenantID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if tenantID != "" {
		req.Header.Set(tenant.TenantHeader, tenantID)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a response body, failing the test on bad JSON.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
