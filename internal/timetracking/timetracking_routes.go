package timetracking

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
	types := r.Group("/time-entry-types")
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "time_entry", "read"), handler.GetTypes)
		types.POST("", middleware.RBACAuthorize(rbacService, "time_entry", "approve"), handler.CreateType)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "time_entry", "approve"), handler.DeleteType)
	}

	entries := r.Group("/time-entries")
	{
		entries.GET("/my", handler.MyEntries)
		entries.GET("/pending", middleware.RBACAuthorize(rbacService, "time_entry", "approve"), handler.Pending)
		entries.POST("", middleware.RBACAuthorize(rbacService, "time_entry", "create"), handler.Create)
		entries.PUT("/:id", middleware.RBACAuthorize(rbacService, "time_entry", "update"), handler.Update)
		entries.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "time_entry", "approve"), handler.Approve)
		entries.DELETE("/:id", middleware.RBACAuthorize(rbacService, "time_entry", "update"), handler.Delete)
	}
}
