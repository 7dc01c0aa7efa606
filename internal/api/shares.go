package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/share"
	"github.com/siteworkhq/sitework/internal/tenant"
)

// sharesAPIHandler provides REST handlers for portal share-link management.
// Permission checks live in the share service, not here: the service is the
// single gate for issuing and revoking links.
type sharesAPIHandler struct {
	shares *share.Service
}

func registerShareRoutes(r chi.Router, shares *share.Service) {
	h := &sharesAPIHandler{shares: shares}
	r.Get("/projects/{id}/shares", h.List)
	r.Post("/projects/{id}/shares", h.Create)
	r.Delete("/shares/{id}", h.Revoke)
}

func shareResponse(l *share.Link) ShareResponse {
	scope := make([]string, 0, 3)
	for _, k := range l.ScopeKinds() {
		scope = append(scope, string(k))
	}
	resp := ShareResponse{
		ID:          l.ID,
		ProjectID:   l.ProjectID,
		Scope:       scope,
		HasPassword: l.PasswordHash.Valid,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
	}
	if l.ExpiresAt.Valid {
		t := l.ExpiresAt.Time
		resp.ExpiresAt = &t
	}
	if l.RevokedAt.Valid {
		t := l.RevokedAt.Time
		resp.RevokedAt = &t
	}
	if l.LastAccessedAt.Valid {
		t := l.LastAccessedAt.Time
		resp.LastAccessedAt = &t
	}
	return resp
}

// Create generates a share link and returns the plaintext token once.
// POST /api/v1/projects/{id}/shares
//
// @Summary      Create a share link
// @Description  Issues a portal token for a project. The token is shown exactly once.
// @Tags         Shares
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Project ID"
// @Param        body  body      CreateShareRequest  true  "Share options"
// @Success      201   {object}  ShareCreatedResponse
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /projects/{id}/shares [post]
func (h *sharesAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	var req CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}

	scope := make([]share.ScopeKind, 0, len(req.Scope))
	for _, s := range req.Scope {
		scope = append(scope, share.ScopeKind(s))
	}

	token, link, err := h.shares.Generate(r.Context(), tc, projectID, share.GenerateOptions{
		Scope:     scope,
		Password:  req.Password,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		writeErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ShareCreatedResponse{
		ShareResponse: shareResponse(link),
		Token:         token,
	})
}

// List returns share-link metadata for a project. Hashes are never included
// and the token is not recoverable.
// GET /api/v1/projects/{id}/shares
func (h *sharesAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	links, err := h.shares.ListForProject(r.Context(), tc, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := ShareListResponse{Shares: make([]ShareResponse, 0, len(links))}
	for _, l := range links {
		resp.Shares = append(resp.Shares, shareResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Revoke marks a share link unusable. Revoking twice succeeds.
// DELETE /api/v1/shares/{id}
func (h *sharesAPIHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	if err := h.shares.Revoke(r.Context(), tc, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
