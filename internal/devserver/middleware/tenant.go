// File: internal/devserver/middleware/tenant.go
package middleware

import (
	"context"
	"net/http"
)

// TenantIDKey is the context key type for the resolved tenant id.
type TenantIDKey string

// TenantHeader carries the tenant scope on every request; it is resolved
// outside the widget and forwarded verbatim.
const TenantHeader = "X-Tenant-ID"

// RequireTenant rejects requests without a tenant id and stores the id in the
// request context for handlers.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(TenantHeader)
		if tenantID == "" {
			http.Error(w, "Missing tenant id", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), TenantIDKey("tenantID"), tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantFromContext extracts the tenant id placed by RequireTenant.
func TenantFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(TenantIDKey("tenantID")).(string)
	return tenantID, ok && tenantID != ""
}
