package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siteworkhq/sitework/internal/apperr"
	"github.com/siteworkhq/sitework/internal/share"
	"github.com/siteworkhq/sitework/internal/store"
)

// SharePasswordHeader carries the optional password for protected links.
const SharePasswordHeader = "X-Share-Password"

// portalHandler serves the anonymous client portal. Requests carry no user
// identity; the validated share grant is the only credential, and every
// handler re-checks that its resource kind is inside the grant's scope.
type portalHandler struct {
	shares    *share.Service
	projects  *store.ProjectStore
	documents *store.DocumentStore
	photos    *store.PhotoStore
}

func registerPortalRoutes(r chi.Router, shares *share.Service, projects *store.ProjectStore, documents *store.DocumentStore, photos *store.PhotoStore) {
	h := &portalHandler{shares: shares, projects: projects, documents: documents, photos: photos}
	r.Route("/portal/{token}", func(r chi.Router) {
		r.Use(h.validateShare)
		r.Get("/project", h.Project)
		r.Get("/documents", h.Documents)
		r.Get("/photos", h.Photos)
	})
}

// validateShare checks the portal token (and password when required) and
// attaches the resulting read-only grant. Every failure renders the same
// not-found shape; a prober cannot tell a revoked link from a wrong token.
func (h *portalHandler) validateShare(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		password := r.Header.Get(SharePasswordHeader)

		sc, err := h.shares.Validate(r.Context(), token, password)
		if err != nil {
			writeErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(share.WithContext(r.Context(), sc)))
	})
}

// grant pulls the validated share context, failing closed when absent or
// when the requested kind is outside the link's scope.
func grant(r *http.Request, kind share.ScopeKind) (*share.Context, error) {
	sc := share.FromContext(r.Context())
	if sc == nil || !sc.Allows(kind) {
		return nil, apperr.NotFound("share link not found")
	}
	return sc, nil
}

// Project returns the shared project's details.
// GET /portal/{token}/project
//
// @Summary      Shared project details
// @Tags         Portal
// @Produce      json
// @Param        token             path    string  true   "Share token"
// @Param        X-Share-Password  header  string  false  "Link password"
// @Success      200  {object}  PortalProjectResponse
// @Failure      404  {object}  errorBody
// @Router       /portal/{token}/project [get]
func (h *portalHandler) Project(w http.ResponseWriter, r *http.Request) {
	sc, err := grant(r, share.ScopeProjectDetails)
	if err != nil {
		writeErr(w, err)
		return
	}

	p, err := h.projects.GetByID(r.Context(), sc.TenantID, sc.ProjectID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PortalProjectResponse{Name: p.Name, Address: p.Address})
}

// Documents returns the shared project's documents.
// GET /portal/{token}/documents
func (h *portalHandler) Documents(w http.ResponseWriter, r *http.Request) {
	sc, err := grant(r, share.ScopeDocuments)
	if err != nil {
		writeErr(w, err)
		return
	}

	docs, err := h.documents.ListByProject(r.Context(), sc.TenantID, sc.ProjectID)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := DocumentListResponse{Documents: make([]DocumentResponse, 0, len(docs))}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, DocumentResponse{
			ID:          d.ID,
			ProjectID:   d.ProjectID,
			Title:       d.Title,
			FileURL:     d.FileURL,
			ContentType: d.ContentType,
			CreatedAt:   d.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Photos returns the shared project's photos.
// GET /portal/{token}/photos
func (h *portalHandler) Photos(w http.ResponseWriter, r *http.Request) {
	sc, err := grant(r, share.ScopePhotos)
	if err != nil {
		writeErr(w, err)
		return
	}

	photos, err := h.photos.ListByProject(r.Context(), sc.TenantID, sc.ProjectID)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := PhotoListResponse{Photos: make([]PhotoResponse, 0, len(photos))}
	for _, p := range photos {
		resp.Photos = append(resp.Photos, PhotoResponse{
			ID:        p.ID,
			ProjectID: p.ProjectID,
			Caption:   p.Caption,
			FileURL:   p.FileURL,
			CreatedAt: p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
