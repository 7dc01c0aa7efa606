package api

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/siteworkhq/sitework/docs/swagger"
	"github.com/siteworkhq/sitework/internal/auth"
	"github.com/siteworkhq/sitework/internal/share"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager   *scs.SessionManager
	AuthHandlers     *auth.Handlers
	TenantMiddleware *tenant.Middleware
	TenantStore      *store.TenantStore
	UserStore        *store.UserStore
	MembershipStore  *store.MembershipStore
	ProjectStore     *store.ProjectStore
	DocumentStore    *store.DocumentStore
	PhotoStore       *store.PhotoStore
	ShareService     *share.Service
}

// NewRouter assembles the full chi router. Authenticated tenant routes pass
// through context resolution before any guard or handler; portal routes skip
// the resolver entirely and go through share validation instead.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(deps.SessionManager.LoadAndSave)

	// Auth routes (no auth required)
	r.Get("/auth/login", deps.AuthHandlers.Login)
	r.Get("/auth/callback", deps.AuthHandlers.Callback)
	r.Post("/auth/logout", deps.AuthHandlers.Logout)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI — no auth required.
	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	// Client portal: anonymous, token-gated, read-only. Its own trust
	// boundary; the tenant resolver never runs here.
	r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		registerPortalRoutes(r, deps.ShareService, deps.ProjectStore, deps.DocumentStore, deps.PhotoStore)
	})

	// Tenant API. Context resolution runs first on every route; guards and
	// handlers below it can rely on a fully-populated context.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(deps.TenantMiddleware.ResolveContext)

		registerProjectRoutes(r, deps.ProjectStore, deps.DocumentStore, deps.PhotoStore)
		registerShareRoutes(r, deps.ShareService)
		registerMemberRoutes(r, deps.MembershipStore, deps.UserStore)
		registerAdminRoutes(r, deps.TenantStore, deps.MembershipStore, deps.UserStore)
	})

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
