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

// projectsAPIHandler provides REST handlers for projects and their documents
// and photos. Every store call is scoped by the resolved tenant context.
type projectsAPIHandler struct {
	projects  *store.ProjectStore
	documents *store.DocumentStore
	photos    *store.PhotoStore
}

func registerProjectRoutes(r chi.Router, projects *store.ProjectStore, documents *store.DocumentStore, photos *store.PhotoStore) {
	h := &projectsAPIHandler{projects: projects, documents: documents, photos: photos}

	r.With(tenant.RequirePermission(rbac.ResourceProjects, rbac.ActionRead)).Get("/projects", h.List)
	r.With(tenant.RequirePermission(rbac.ResourceProjects, rbac.ActionCreate)).Post("/projects", h.Create)
	r.With(tenant.RequirePermission(rbac.ResourceProjects, rbac.ActionRead)).Get("/projects/{id}", h.Get)
	r.With(tenant.RequirePermission(rbac.ResourceProjects, rbac.ActionUpdate)).Put("/projects/{id}", h.Update)
	r.With(tenant.RequirePermission(rbac.ResourceProjects, rbac.ActionDelete)).Delete("/projects/{id}", h.Delete)

	r.With(tenant.RequirePermission(rbac.ResourceDocuments, rbac.ActionRead)).Get("/projects/{id}/documents", h.ListDocuments)
	r.With(tenant.RequirePermission(rbac.ResourceDocuments, rbac.ActionCreate)).Post("/projects/{id}/documents", h.CreateDocument)
	r.With(tenant.RequirePermission(rbac.ResourcePhotos, rbac.ActionRead)).Get("/projects/{id}/photos", h.ListPhotos)
	r.With(tenant.RequirePermission(rbac.ResourcePhotos, rbac.ActionCreate)).Post("/projects/{id}/photos", h.CreatePhoto)
}

func projectResponse(p *store.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// List returns the projects of the caller's tenant.
// GET /api/v1/projects
//
// @Summary      List projects
// @Tags         Projects
// @Produce      json
// @Success      200  {object}  ProjectListResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /projects [get]
func (h *projectsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	projects, err := h.projects.ListByTenant(r.Context(), tc.TenantID)
	if err != nil {
		writeErr(w, err)
		return
	}

	resp := ProjectListResponse{Projects: make([]ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, projectResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create creates a project in the caller's tenant.
// POST /api/v1/projects
//
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        body  body      CreateProjectRequest  true  "Project"
// @Success      201   {object}  ProjectResponse
// @Failure      400   {object}  errorBody
// @Router       /projects [post]
func (h *projectsAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" {
		writeErr(w, apperr.Validation("name is required"))
		return
	}

	p, err := h.projects.Create(r.Context(), tc.TenantID, req.Name, req.Address)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectResponse(p))
}

// Get returns one project.
// GET /api/v1/projects/{id}
func (h *projectsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	p, err := h.projects.GetByID(r.Context(), tc.TenantID, chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, apperr.NotFound("project not found"))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(p))
}

// Update updates a project.
// PUT /api/v1/projects/{id}
func (h *projectsAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Name == "" {
		writeErr(w, apperr.Validation("name is required"))
		return
	}
	status := req.Status
	if status == "" {
		status = "active"
	}

	p, err := h.projects.Update(r.Context(), tc.TenantID, chi.URLParam(r, "id"), req.Name, req.Address, status)
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, apperr.NotFound("project not found"))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse(p))
}

// Delete removes a project.
// DELETE /api/v1/projects/{id}
func (h *projectsAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())

	err := h.projects.Delete(r.Context(), tc.TenantID, chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, apperr.NotFound("project not found"))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments returns a project's documents.
// GET /api/v1/projects/{id}/documents
func (h *projectsAPIHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	if _, err := h.projects.GetByID(r.Context(), tc.TenantID, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, apperr.NotFound("project not found"))
			return
		}
		writeErr(w, err)
		return
	}

	docs, err := h.documents.ListByProject(r.Context(), tc.TenantID, projectID)
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

// CreateDocument attaches a document to a project.
// POST /api/v1/projects/{id}/documents
func (h *projectsAPIHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	if _, err := h.projects.GetByID(r.Context(), tc.TenantID, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, apperr.NotFound("project not found"))
			return
		}
		writeErr(w, err)
		return
	}

	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}
	if req.Title == "" || req.FileURL == "" {
		writeErr(w, apperr.Validation("title and file_url are required"))
		return
	}

	d, err := h.documents.Create(r.Context(), tc.TenantID, projectID, req.Title, req.FileURL, req.ContentType, tc.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, DocumentResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		Title:       d.Title,
		FileURL:     d.FileURL,
		ContentType: d.ContentType,
		CreatedAt:   d.CreatedAt,
	})
}

// ListPhotos returns a project's photos.
// GET /api/v1/projects/{id}/photos
func (h *projectsAPIHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	if _, err := h.projects.GetByID(r.Context(), tc.TenantID, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, apperr.NotFound("project not found"))
			return
		}
		writeErr(w, err)
		return
	}

	photos, err := h.photos.ListByProject(r.Context(), tc.TenantID, projectID)
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

// CreatePhoto attaches a photo to a project.
// POST /api/v1/projects/{id}/photos
func (h *projectsAPIHandler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	tc := tenant.FromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	if _, err := h.projects.GetByID(r.Context(), tc.TenantID, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, apperr.NotFound("project not found"))
			return
		}
		writeErr(w, err)
		return
	}

	var req CreatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, apperr.Validation("invalid request body"))
		return
	}
	if req.FileURL == "" {
		writeErr(w, apperr.Validation("file_url is required"))
		return
	}

	p, err := h.photos.Create(r.Context(), tc.TenantID, projectID, req.Caption, req.FileURL, tc.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, PhotoResponse{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Caption:   p.Caption,
		FileURL:   p.FileURL,
		CreatedAt: p.CreatedAt,
	})
}
