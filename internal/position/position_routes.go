package position

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
	positions := r.Group("/positions")
	{
		positions.GET("", middleware.RBACAuthorize(rbacService, "position", "read"), handler.GetAll)
		positions.GET("/:id", middleware.RBACAuthorize(rbacService, "position", "read"), handler.GetById)
		positions.POST("", middleware.RBACAuthorize(rbacService, "position", "create"), handler.Create)
		positions.PUT("/:id", middleware.RBACAuthorize(rbacService, "position", "update"), handler.Update)
		positions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "position", "delete"), handler.Delete)
	}
}
