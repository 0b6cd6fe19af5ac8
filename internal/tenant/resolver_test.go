package tenant_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTenantRepository struct {
	withTxFn                    func(tx *sql.Tx) tenant.Repository
	findActiveByIDFn            func(ctx context.Context, id string) (*tenant.Tenant, error)
	findActiveBySlugFn          func(ctx context.Context, slug string) (*tenant.Tenant, error)
	findByIDFn                  func(ctx context.Context, id string) (*tenant.Tenant, error)
	findActiveIDsFn             func(ctx context.Context) ([]string, error)
	findSettingsFn              func(ctx context.Context, tenantID string) (*tenant.TenantSettings, error)
	saveSettingsFn              func(ctx context.Context, s *tenant.TenantSettings) error
	findMembershipFn            func(ctx context.Context, userID, tenantID string) (*tenant.TenantMembership, error)
	findMembershipsByUserFn     func(ctx context.Context, userID string) ([]tenant.TenantMembership, error)
	findDefaultMembershipFn     func(ctx context.Context, userID string) (*tenant.TenantMembership, error)
	findFirstActiveMembershipFn func(ctx context.Context, userID string) (*tenant.TenantMembership, error)
	clearDefaultFlagsFn         func(ctx context.Context, userID, exceptMembershipID string) error
	updateMembershipFn          func(ctx context.Context, m *tenant.TenantMembership) error
}

func (f *fakeTenantRepository) WithTx(tx *sql.Tx) tenant.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTenantRepository) FindActiveByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	if f.findActiveByIDFn != nil {
		return f.findActiveByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTenantRepository) FindActiveBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	if f.findActiveBySlugFn != nil {
		return f.findActiveBySlugFn(ctx, slug)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTenantRepository) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTenantRepository) FindActiveIDs(ctx context.Context) ([]string, error) {
	if f.findActiveIDsFn != nil {
		return f.findActiveIDsFn(ctx)
	}
	return nil, nil
}

func (f *fakeTenantRepository) FindSettings(ctx context.Context, tenantID string) (*tenant.TenantSettings, error) {
	if f.findSettingsFn != nil {
		return f.findSettingsFn(ctx, tenantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTenantRepository) SaveSettings(ctx context.Context, s *tenant.TenantSettings) error {
	if f.saveSettingsFn != nil {
		return f.saveSettingsFn(ctx, s)
	}
	return nil
}

func (f *fakeTenantRepository) FindMembership(ctx context.Context, userID, tenantID string) (*tenant.TenantMembership, error) {
	if f.findMembershipFn != nil {
		return f.findMembershipFn(ctx, userID, tenantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTenantRepository) FindMembershipsByUser(ctx context.Context, userID string) ([]tenant.TenantMembership, error) {
	if f.findMembershipsByUserFn != nil {
		return f.findMembershipsByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeTenantRepository) FindDefaultMembership(ctx context.Context, userID string) (*tenant.TenantMembership, error) {
	if f.findDefaultMembershipFn != nil {
		return f.findDefaultMembershipFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTenantRepository) FindFirstActiveMembership(ctx context.Context, userID string) (*tenant.TenantMembership, error) {
	if f.findFirstActiveMembershipFn != nil {
		return f.findFirstActiveMembershipFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTenantRepository) ClearDefaultFlags(ctx context.Context, userID, exceptMembershipID string) error {
	if f.clearDefaultFlagsFn != nil {
		return f.clearDefaultFlagsFn(ctx, userID, exceptMembershipID)
	}
	return nil
}

func (f *fakeTenantRepository) UpdateMembership(ctx context.Context, m *tenant.TenantMembership) error {
	if f.updateMembershipFn != nil {
		return f.updateMembershipFn(ctx, m)
	}
	return nil
}

func activeTenant(name string) *tenant.Tenant {
	return &tenant.Tenant{ID: uuid.New(), Name: name, Slug: name, IsActive: true}
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("header wins over subdomain and membership", func(t *testing.T) {
		headerTenant := activeTenant("acme")
		repo := &fakeTenantRepository{
			findActiveByIDFn: func(ctx context.Context, id string) (*tenant.Tenant, error) {
				assert.Equal(t, headerTenant.ID.String(), id)
				return headerTenant, nil
			},
			findActiveBySlugFn: func(ctx context.Context, slug string) (*tenant.Tenant, error) {
				t.Fatal("subdomain lookup must not run when the header matches")
				return nil, nil
			},
		}

		r := tenant.NewResolver(repo)
		got := r.Resolve(ctx, tenant.ResolveInput{
			TenantIDHeader: headerTenant.ID.String(),
			Host:           "other.example.com",
			UserID:         userID,
		})
		assert.Equal(t, headerTenant, got)
	})

	t.Run("malformed header falls through to subdomain", func(t *testing.T) {
		slugTenant := activeTenant("acme")
		repo := &fakeTenantRepository{
			findActiveBySlugFn: func(ctx context.Context, slug string) (*tenant.Tenant, error) {
				assert.Equal(t, "acme", slug)
				return slugTenant, nil
			},
		}

		r := tenant.NewResolver(repo)
		got := r.Resolve(ctx, tenant.ResolveInput{
			TenantIDHeader: "not-a-uuid",
			Host:           "acme.hrm.example.com",
		})
		assert.Equal(t, slugTenant, got)
	})

	t.Run("inactive header tenant falls through", func(t *testing.T) {
		slugTenant := activeTenant("beta")
		repo := &fakeTenantRepository{
			// Active-only lookup misses the deactivated tenant.
			findActiveByIDFn: func(ctx context.Context, id string) (*tenant.Tenant, error) {
				return nil, gorm.ErrRecordNotFound
			},
			findActiveBySlugFn: func(ctx context.Context, slug string) (*tenant.Tenant, error) {
				return slugTenant, nil
			},
		}

		r := tenant.NewResolver(repo)
		got := r.Resolve(ctx, tenant.ResolveInput{
			TenantIDHeader: uuid.New().String(),
			Host:           "beta.hrm.example.com",
		})
		assert.Equal(t, slugTenant, got)
	})

	t.Run("host with two labels has no subdomain", func(t *testing.T) {
		repo := &fakeTenantRepository{
			findActiveBySlugFn: func(ctx context.Context, slug string) (*tenant.Tenant, error) {
				t.Fatal("no slug lookup expected for a bare domain")
				return nil, nil
			},
		}

		r := tenant.NewResolver(repo)
		got := r.Resolve(ctx, tenant.ResolveInput{Host: "example.com"})
		assert.Nil(t, got)
	})

	t.Run("port is stripped before inspecting the host", func(t *testing.T) {
		slugTenant := activeTenant("acme")
		repo := &fakeTenantRepository{
			findActiveBySlugFn: func(ctx context.Context, slug string) (*tenant.Tenant, error) {
				assert.Equal(t, "acme", slug)
				return slugTenant, nil
			},
		}

		r := tenant.NewResolver(repo)
		got := r.Resolve(ctx, tenant.ResolveInput{Host: "acme.hrm.example.com:8080"})
		assert.Equal(t, slugTenant, got)
	})

	t.Run("default membership used when header and host miss", func(t *testing.T) {
		defaultTenant := activeTenant("gamma")
		repo := &fakeTenantRepository{
			findDefaultMembershipFn: func(ctx context.Context, uid string) (*tenant.TenantMembership, error) {
				assert.Equal(t, userID, uid)
				return &tenant.TenantMembership{Tenant: defaultTenant, IsDefault: true}, nil
			},
		}

		r := tenant.NewResolver(repo)
		got := r.Resolve(ctx, tenant.ResolveInput{UserID: userID})
		assert.Equal(t, defaultTenant, got)
	})

	t.Run("first active membership used when no default exists", func(t *testing.T) {
		firstTenant := activeTenant("delta")
		repo := &fakeTenantRepository{
			findFirstActiveMembershipFn: func(ctx context.Context, uid string) (*tenant.TenantMembership, error) {
				return &tenant.TenantMembership{Tenant: firstTenant}, nil
			},
		}

		r := tenant.NewResolver(repo)
		got := r.Resolve(ctx, tenant.ResolveInput{UserID: userID})
		assert.Equal(t, firstTenant, got)
	})

	t.Run("anonymous request without matches resolves to nil", func(t *testing.T) {
		r := tenant.NewResolver(&fakeTenantRepository{})
		got := r.Resolve(ctx, tenant.ResolveInput{})
		assert.Nil(t, got)
	})

	t.Run("adapter returns empty string for no tenant", func(t *testing.T) {
		r := tenant.NewResolver(&fakeTenantRepository{})
		assert.Equal(t, "", r.ResolveTenantID(ctx, "", "", ""))
	})
}

func TestShouldBypass(t *testing.T) {
	assert.True(t, tenant.ShouldBypass("/health"))
	assert.True(t, tenant.ShouldBypass("/api/v1/auth/login"))
	assert.False(t, tenant.ShouldBypass("/api/v1/employees"))
}
