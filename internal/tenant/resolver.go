package tenant

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BypassPrefixes are request paths that never carry a tenant. The
// middleware skips resolution entirely for them.
var BypassPrefixes = []string{
	"/health",
	"/api/v1/health",
	"/api/v1/auth/",
	"/api/schema",
	"/api/docs",
}

// ShouldBypass reports whether tenant resolution must be skipped for
// the given request path.
func ShouldBypass(path string) bool {
	for _, p := range BypassPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// ResolveInput carries the request metadata the resolver inspects.
// UserID is empty for anonymous requests.
type ResolveInput struct {
	TenantIDHeader string
	Host           string
	UserID         string
}

// Resolver determines the active tenant for a request.
//
// Resolution order, first match wins:
//  1. X-Tenant-ID header, looked up by primary key, must be active.
//     Malformed or inactive ids fall through silently.
//  2. Leftmost subdomain label (when the host has more than two
//     dot-separated labels), looked up by slug, must be active.
//  3. The authenticated user's default membership; if none is flagged
//     default, the first membership whose tenant is active.
//
// Resolve is a pure read and never fails: a nil tenant is a valid
// terminal state that downstream authorization rejects explicitly.
type Resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("tenant.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.resolver")
	}
	return &Resolver{repo: repo, logger: l}
}

func (r *Resolver) Resolve(ctx context.Context, in ResolveInput) *Tenant {
	if t := r.resolveFromHeader(ctx, in.TenantIDHeader); t != nil {
		return t
	}
	if t := r.resolveFromSubdomain(ctx, in.Host); t != nil {
		return t
	}
	if in.UserID != "" {
		if t := r.resolveFromMembership(ctx, in.UserID); t != nil {
			return t
		}
	}
	return nil
}

// ResolveTenantID is the adapter the HTTP middleware consumes. Empty
// string means "no tenant context".
func (r *Resolver) ResolveTenantID(ctx context.Context, tenantIDHeader, host, userID string) string {
	t := r.Resolve(ctx, ResolveInput{
		TenantIDHeader: tenantIDHeader,
		Host:           host,
		UserID:         userID,
	})
	if t == nil {
		return ""
	}
	return t.ID.String()
}

func (r *Resolver) resolveFromHeader(ctx context.Context, header string) *Tenant {
	if header == "" {
		return nil
	}
	if _, err := uuid.Parse(header); err != nil {
		r.logger.Debug("tenant header malformed, falling through", zap.String("header", header))
		return nil
	}

	t, err := r.repo.FindActiveByID(ctx, header)
	if err != nil {
		r.logger.Debug("tenant header did not match an active tenant",
			zap.String("tenant_id", header),
		)
		return nil
	}
	return t
}

func (r *Resolver) resolveFromSubdomain(ctx context.Context, host string) *Tenant {
	if host == "" {
		return nil
	}

	// Buang port sebelum memeriksa label subdomain
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return nil
	}
	slug := parts[0]

	t, err := r.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		r.logger.Debug("subdomain did not match an active tenant", zap.String("slug", slug))
		return nil
	}
	return t
}

func (r *Resolver) resolveFromMembership(ctx context.Context, userID string) *Tenant {
	m, err := r.repo.FindDefaultMembership(ctx, userID)
	if err == nil && m.Tenant != nil {
		return m.Tenant
	}

	m, err = r.repo.FindFirstActiveMembership(ctx, userID)
	if err == nil && m.Tenant != nil {
		return m.Tenant
	}
	return nil
}
