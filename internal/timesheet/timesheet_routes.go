package timesheet

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
	sheets := r.Group("/timesheets")
	{
		sheets.GET("/my", handler.My)
		sheets.GET("/submitted", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.Submitted)
		sheets.GET("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "read"), handler.GetById)
		sheets.POST("", middleware.RBACAuthorize(rbacService, "timesheet", "create"), handler.Create)
		sheets.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "timesheet", "submit"), handler.Submit)
		sheets.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.Approve)
		sheets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), handler.Reject)
		sheets.DELETE("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "update"), handler.Delete)
	}
}
