package tenant

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	tenants := r.Group("/tenant")
	{
		tenants.GET("/current", middleware.RBACAuthorize(rbacService, "tenant", "read"), handler.GetCurrent)
		tenants.PUT("/settings", middleware.RBACAuthorize(rbacService, "tenant", "manage"), handler.UpdateSettings)
	}

	// Membership endpoints are self-service and tenant-independent.
	memberships := r.Group("/memberships")
	{
		memberships.GET("", handler.ListMyMemberships)
		memberships.POST("/default", handler.SetDefaultMembership)
	}
}
