package api

import "time"

// --- Project types ---

// CreateProjectRequest is the request body for POST /api/v1/projects.
type CreateProjectRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// UpdateProjectRequest is the request body for PUT /api/v1/projects/{id}.
type UpdateProjectRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ProjectResponse is the JSON representation of a single project.
type ProjectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectListResponse is the response for GET /api/v1/projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// --- Document and photo types ---

// CreateDocumentRequest is the request body for POST /api/v1/projects/{id}/documents.
type CreateDocumentRequest struct {
	Title       string `json:"title"`
	FileURL     string `json:"file_url"`
	ContentType string `json:"content_type,omitempty"`
}

// DocumentResponse is the JSON representation of a project document.
type DocumentResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	FileURL     string    `json:"file_url"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentListResponse is the response for document list endpoints.
type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// CreatePhotoRequest is the request body for POST /api/v1/projects/{id}/photos.
type CreatePhotoRequest struct {
	Caption string `json:"caption,omitempty"`
	FileURL string `json:"file_url"`
}

// PhotoResponse is the JSON representation of a project photo.
type PhotoResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Caption   string    `json:"caption"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoListResponse is the response for photo list endpoints.
type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
}

// --- Share types ---

// CreateShareRequest is the request body for POST /api/v1/projects/{id}/shares.
type CreateShareRequest struct {
	Scope     []string   `json:"scope"`
	Password  string     `json:"password,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ShareResponse is the JSON representation of a share link. The token appears
// only in ShareCreatedResponse, exactly once; it is not recoverable from the
// stored hash and is never re-exposed.
type ShareResponse struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	Scope          []string   `json:"scope"`
	HasPassword    bool       `json:"has_password"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	RevokedAt      *time.Time `json:"revoked_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at"`
}

// ShareCreatedResponse is the response for POST /api/v1/projects/{id}/shares.
type ShareCreatedResponse struct {
	ShareResponse
	Token string `json:"token"`
}

// ShareListResponse is the response for GET /api/v1/projects/{id}/shares.
type ShareListResponse struct {
	Shares []ShareResponse `json:"shares"`
}

// --- Member types ---

// AddMemberRequest is the request body for POST /api/v1/members.
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateMemberRoleRequest is the request body for PUT /api/v1/members/{uid}/role.
type UpdateMemberRoleRequest struct {
	Role string `json:"role"`
}

// MemberResponse is the JSON representation of a tenant member.
type MemberResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

// MemberListResponse is the response for GET /api/v1/members.
type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
}

// --- Platform admin types ---

// CreateTenantRequest is the request body for POST /api/v1/admin/tenants.
type CreateTenantRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TenantResponse is the JSON representation of a tenant.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantListResponse is the response for GET /api/v1/admin/tenants.
type TenantListResponse struct {
	Tenants []TenantResponse `json:"tenants"`
}

// --- Portal types ---

// PortalProjectResponse is the read-only project view exposed to share-link
// holders. It deliberately omits tenant and internal status fields.
type PortalProjectResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
