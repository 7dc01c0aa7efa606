package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/rbac"
	"github.com/siteworkhq/sitework/internal/store"
	"github.com/siteworkhq/sitework/internal/tenant"
)

// membersAPIHandler provides REST handlers for tenant membership management.
type membersAPIHandler struct {
	memberships *store.MembershipStore
	users       *store.UserStore
}

func registerMemberRoutes(r chi.Router, memberships *store.MembershipStore, users *store.UserStore) {
	h := &membersAPIHandler{memberships: memberships, users: users}

	r.With(tenant.RequirePermission(rbac.ResourceMembers, rbac.ActionRead)).Get("/members", h.List)
	r.With(tenant.RequirePermission(rbac.ResourceMembers, rbac.ActionCreate)).Post("/members", h.Add)
	r.With(tenant.RequirePermission(rbac.ResourceMembers, rbac.ActionUpdate)).Put("/members/{uid}/role", h.UpdateRole)
	r.With(tenant.RequirePermission(rbac.ResourceMembers, rbac.ActionDelete)).Delete("/members/{uid}", h.Remove)
}

// List returns all members of the caller's tenant.
// GET /api/v1/members
func (h *membersAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	members, err := h.memberships.ListByTenant(r.Context(), tc.TenantID)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := MemberListResponse{Members: make([]MemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, MemberResponse{
			UserID:      m.ID,
			Email:       m.Email,
			DisplayName: m.DisplayName,
			Role:        m.Role,
			Status:      m.Status,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Add creates a membership for an existing user by email.
// POST /api/v1/members
func (h *membersAPIHandler) Add(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Email == "" {
		writeErr(w, apperr.Validation("email is required"))
		return
	}
	if !rbac.Valid(rbac.Role(req.Role)) {
		writeErr(w, apperr.Validation("invalid role"))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, apperr.NotFound("user not found"))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	m, err := h.memberships.Add(r.Context(), tc.TenantID, user.ID, req.Role, store.MembershipActive)
	if errors.Is(err, store.ErrAlreadyMember) {
		writeError(w, http.StatusConflict, "user is already a member of this tenant", "duplicate_member")
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, MemberResponse{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        m.Role,
		Status:      m.Status,
	})
}

// UpdateRole changes a member's role.
// PUT /api/v1/members/{uid}/role
func (h *membersAPIHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	var req UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}
	if !rbac.Valid(rbac.Role(req.Role)) {
		writeErr(w, apperr.Validation("invalid role"))
		return
	}

	err := h.memberships.UpdateRole(r.Context(), tc.TenantID, chi.URLParam(r, "uid"), req.Role)
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, apperr.NotFound("member not found"))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Remove deletes a membership.
// DELETE /api/v1/members/{uid}
func (h *membersAPIHandler) Remove(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	err := h.memberships.Remove(r.Context(), tc.TenantID, chi.URLParam(r, "uid"))
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, apperr.NotFound("member not found"))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
