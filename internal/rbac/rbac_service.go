package rbac

import (
	"context"
	"errors"

	"go-hrm/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

// RoleSource resolves the membership role a user holds in a tenant.
// Satisfied by the tenant service; kept as a local interface so this
// package stays free of domain imports.
type RoleSource interface {
	RoleFor(ctx context.Context, userID, tenantID string) (string, error)
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	// Authorize resolves the caller's membership role for the tenant
	// and enforces (role, resource, action). Users without a
	// membership are denied, not errored.
	Authorize(ctx context.Context, userID, tenantID, resource, action string) (bool, error)

	// Enforce checks a known role directly.
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	roles    RoleSource
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, roles RoleSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, roles: roles, logger: l}
}

func (s *service) Authorize(ctx context.Context, userID, tenantID, resource, action string) (bool, error) {
	role, err := s.roles.RoleFor(ctx, userID, tenantID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound {
			// Not a member of this tenant: plain denial.
			return false, nil
		}
		return false, err
	}

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	return allowed, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
