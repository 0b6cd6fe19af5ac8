package middleware

import (
	"context"
	"strings"

	"go-hrm/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

// TenantResolver adalah interface lokal; implementasinya ada di
// package tenant. Mengembalikan string kosong saat tidak ada tenant.
type TenantResolver interface {
	ResolveTenantID(ctx context.Context, tenantIDHeader, host, userID string) string
}

// Paths yang tidak pernah membawa tenant context.
var tenantBypassPrefixes = []string{
	"/health",
	"/api/v1/health",
	"/api/v1/auth/",
	"/api/schema",
	"/api/docs",
}

// TenantContext resolves the active tenant for the request and attaches
// it to both the gin context and the standard context. Absence of a
// tenant is not an error here; role-gated endpoints reject it later.
func TenantContext(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range tenantBypassPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		userID := c.GetString("user_id_validated")

		tenantID := resolver.ResolveTenantID(
			c.Request.Context(),
			c.GetHeader("X-Tenant-ID"),
			c.Request.Host,
			userID,
		)

		if tenantID != "" {
			c.Set("tenant_id", tenantID)
			ctx := contextutil.WithTenantID(c.Request.Context(), tenantID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}
