package leave

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
	types := r.Group("/leave-types")
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetTypes)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetType)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "create"), handler.CreateType)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "update"), handler.UpdateType)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "delete"), handler.DeleteType)
	}

	requests := r.Group("/leave-requests")
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.CreateRequest)
		requests.GET("/my", handler.MyRequests)
		requests.GET("/calendar", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Calendar)
		// Role check di service juga; middleware hanya gerbang pertama.
		requests.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.PendingApprovals)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetRequest)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
	}

	balances := r.Group("/leave-balances")
	{
		balances.GET("/my", handler.MyBalances)
		balances.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), handler.BalanceSummary)
		balances.PUT("/entitlement", middleware.RBACAuthorize(rbacService, "leave_balance", "manage"), handler.SetEntitlement)
	}

	holidays := r.Group("/holidays")
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.GetHolidays)
		holidays.GET("/upcoming", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.UpcomingHolidays)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), handler.CreateHoliday)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "update"), handler.UpdateHoliday)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "delete"), handler.DeleteHoliday)
		holidays.POST("/sync", middleware.RBACAuthorize(rbacService, "holiday", "sync"), handler.SyncHolidays)
	}
}
