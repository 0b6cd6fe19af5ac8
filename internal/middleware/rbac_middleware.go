package middleware

import (
	"context"
	"net/http"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService adalah interface lokal. Apapun package yang punya method
// Authorize dengan signature ini bisa masuk ke sini.
type RBACService interface {
	Authorize(ctx context.Context, userID, tenantID, resource, action string) (bool, error)
}

// RBACAuthorize gates a route on the caller's membership role in the
// resolved tenant. No tenant context is a NO_TENANT rejection, not a
// silent pass.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id_validated")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			c.Abort()
			return
		}

		tenantID := c.GetString("tenant_id")
		if tenantID == "" {
			response.Error(c, apperror.ErrNoTenant.HTTPStatus, apperror.ErrNoTenant.Code, apperror.ErrNoTenant.Message, nil)
			c.Abort()
			return
		}

		allowed, err := service.Authorize(c.Request.Context(), userID, tenantID, resource, action)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
