package tenant_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/tenant"
	tenanterrors "go-hrm/internal/tenant/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type tenantServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service tenant.Service
	repo    *fakeTenantRepository
}

func setupTenantServiceTest(t *testing.T) *tenantServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTenantRepository{}
	svc := tenant.NewService(db, repo)

	return &tenantServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func TestTenantService_SetDefaultMembership(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("flips the flag and clears the others in one transaction", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		target := tenant.TenantMembership{ID: uuid.New(), UserID: uuid.MustParse(userID), Role: tenant.RoleAdmin}
		other := tenant.TenantMembership{ID: uuid.New(), UserID: uuid.MustParse(userID), IsDefault: true}

		deps.repo.findMembershipsByUserFn = func(ctx context.Context, uid string) ([]tenant.TenantMembership, error) {
			return []tenant.TenantMembership{other, target}, nil
		}

		cleared := false
		deps.repo.clearDefaultFlagsFn = func(ctx context.Context, uid, except string) error {
			cleared = true
			assert.Equal(t, userID, uid)
			assert.Equal(t, target.ID.String(), except)
			return nil
		}

		var saved *tenant.TenantMembership
		deps.repo.updateMembershipFn = func(ctx context.Context, m *tenant.TenantMembership) error {
			saved = m
			return nil
		}

		res, err := deps.service.SetDefaultMembership(ctx, userID, target.ID.String())
		assert.NoError(t, err)
		assert.True(t, cleared)
		assert.NotNil(t, saved)
		assert.True(t, saved.IsDefault)
		assert.True(t, res.IsDefault)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("membership of another user is not found", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findMembershipsByUserFn = func(ctx context.Context, uid string) ([]tenant.TenantMembership, error) {
			return []tenant.TenantMembership{{ID: uuid.New()}}, nil
		}

		_, err := deps.service.SetDefaultMembership(ctx, userID, uuid.New().String())
		assert.ErrorIs(t, err, tenanterrors.ErrMembershipNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("clear failure rolls the transaction back", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		target := tenant.TenantMembership{ID: uuid.New(), UserID: uuid.MustParse(userID)}
		deps.repo.findMembershipsByUserFn = func(ctx context.Context, uid string) ([]tenant.TenantMembership, error) {
			return []tenant.TenantMembership{target}, nil
		}
		deps.repo.clearDefaultFlagsFn = func(ctx context.Context, uid, except string) error {
			return gorm.ErrInvalidTransaction
		}

		updated := false
		deps.repo.updateMembershipFn = func(ctx context.Context, m *tenant.TenantMembership) error {
			updated = true
			return nil
		}

		_, err := deps.service.SetDefaultMembership(ctx, userID, target.ID.String())
		assert.Error(t, err)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid ids rejected before any query", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.SetDefaultMembership(ctx, "nope", uuid.New().String())
		assert.ErrorIs(t, err, tenanterrors.ErrInvalidUserID)

		_, err = deps.service.SetDefaultMembership(ctx, userID, "nope")
		assert.ErrorIs(t, err, tenanterrors.ErrInvalidMembershipID)
	})
}

func TestTenantService_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		current := &tenant.TenantSettings{
			TenantID:               uuid.MustParse(tenantID),
			WorkHoursPerDay:        decimal.NewFromInt(8),
			WorkDaysPerWeek:        5,
			DefaultAnnualLeaveDays: 20,
			TimesheetPeriod:        "biweekly",
			Currency:               "EUR",
		}
		deps.repo.findSettingsFn = func(ctx context.Context, tid string) (*tenant.TenantSettings, error) {
			return current, nil
		}

		var saved *tenant.TenantSettings
		deps.repo.saveSettingsFn = func(ctx context.Context, s *tenant.TenantSettings) error {
			saved = s
			return nil
		}

		annual := 25
		res, err := deps.service.UpdateSettings(ctx, tenantID, tenant.UpdateSettingsRequest{
			DefaultAnnualLeaveDays: &annual,
		})

		assert.NoError(t, err)
		assert.Equal(t, 25, saved.DefaultAnnualLeaveDays)
		assert.Equal(t, 5, saved.WorkDaysPerWeek)
		assert.Equal(t, "EUR", res.Currency)
	})

	t.Run("unknown timesheet period rejected", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		period := "daily"
		_, err := deps.service.UpdateSettings(ctx, tenantID, tenant.UpdateSettingsRequest{
			TimesheetPeriod: &period,
		})
		assert.ErrorIs(t, err, tenanterrors.ErrInvalidTimesheetPeriod)
	})

	t.Run("missing settings row surfaces as not found", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		deps.repo.findSettingsFn = func(ctx context.Context, tid string) (*tenant.TenantSettings, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.UpdateSettings(ctx, tenantID, tenant.UpdateSettingsRequest{})
		assert.ErrorIs(t, err, tenanterrors.ErrSettingsNotFound)
	})
}

func TestTenantService_RoleFor(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()
	tenantID := uuid.New().String()

	t.Run("returns the membership role", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		deps.repo.findMembershipFn = func(ctx context.Context, uid, tid string) (*tenant.TenantMembership, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, tenantID, tid)
			return &tenant.TenantMembership{Role: tenant.RoleManager}, nil
		}

		role, err := deps.service.RoleFor(ctx, userID, tenantID)
		assert.NoError(t, err)
		assert.Equal(t, tenant.RoleManager, role)
	})

	t.Run("no membership means no role", func(t *testing.T) {
		deps := setupTenantServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.RoleFor(ctx, userID, tenantID)
		assert.ErrorIs(t, err, tenanterrors.ErrMembershipNotFound)
	})
}

func TestCanApprove(t *testing.T) {
	assert.True(t, tenant.CanApprove(tenant.RoleOwner))
	assert.True(t, tenant.CanApprove(tenant.RoleAdmin))
	assert.True(t, tenant.CanApprove(tenant.RoleManager))
	assert.False(t, tenant.CanApprove(tenant.RoleEmployee))
	assert.False(t, tenant.CanApprove(tenant.RoleViewer))
	assert.False(t, tenant.CanApprove(""))
}
