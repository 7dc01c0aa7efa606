// @title           Sitework API
// @version         1.0
// @description     Multi-tenant project management backend. Authenticated routes require a session and an X-Tenant-ID header; /portal routes require only a share token.
// @BasePath        /api/v1
// @securityDefinitions.apikey TenantHeader
// @in              header
// @name            X-Tenant-ID
// @description     Tenant the request acts under; verified against the membership store.
package api
