package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/rbac"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
)

// adminAPIHandler provides platform-administration handlers. The whole group
// is locked to superadmin contexts regardless of fine-grained permissions.
type adminAPIHandler struct {
	tenants     *store.TenantStore
	memberships *store.MembershipStore
	users       *store.UserStore
}

func registerAdminRoutes(r chi.Router, tenants *store.TenantStore, memberships *store.MembershipStore, users *store.UserStore) {
	h := &adminAPIHandler{tenants: tenants, memberships: memberships, users: users}

	r.Route("/admin", func(r chi.Router) {
		r.Use(tenant.RequireRole(rbac.RoleSuperadmin))
		r.Get("/tenants", h.ListTenants)
		r.Post("/tenants", h.CreateTenant)
	})
}

// ListTenants returns every tenant on the platform.
// GET /api/v1/admin/tenants
func (h *adminAPIHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenants.ListAll(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := TenantListResponse{Tenants: make([]TenantResponse, 0, len(tenants))}
	for _, t := range tenants {
		resp.Tenants = append(resp.Tenants, TenantResponse{
			ID:        t.ID,
			Name:      t.Name,
			Slug:      t.Slug,
			CreatedAt: t.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateTenant provisions a new tenant.
// POST /api/v1/admin/tenants
func (h *adminAPIHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" || req.Slug == "" {
		writeErr(w, apperr.Validation("name and slug are required"))
		return
	}

	t, err := h.tenants.Create(r.Context(), req.Name, req.Slug)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: t.CreatedAt,
	})
}
