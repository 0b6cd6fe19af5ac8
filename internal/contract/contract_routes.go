package contract

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
	types := r.Group("/contract-types")
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "contract", "read"), handler.GetTypes)
		types.POST("", middleware.RBACAuthorize(rbacService, "contract", "create"), handler.CreateType)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "contract", "update"), handler.UpdateType)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "contract", "delete"), handler.DeleteType)
	}

	contracts := r.Group("/contracts")
	{
		contracts.GET("", middleware.RBACAuthorize(rbacService, "contract", "read"), handler.GetAll)
		contracts.GET("/:id", middleware.RBACAuthorize(rbacService, "contract", "read"), handler.GetById)
		contracts.POST("", middleware.RBACAuthorize(rbacService, "contract", "create"), handler.Create)
		contracts.PUT("/:id", middleware.RBACAuthorize(rbacService, "contract", "update"), handler.Update)
		contracts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "contract", "delete"), handler.Delete)
	}
}
