package tenant

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_repo.go -destination=mock/tenant_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindActiveByID(ctx context.Context, id string) (*Tenant, error)
	FindActiveBySlug(ctx context.Context, slug string) (*Tenant, error)
	FindByID(ctx context.Context, id string) (*Tenant, error)
	FindActiveIDs(ctx context.Context) ([]string, error)

	FindSettings(ctx context.Context, tenantID string) (*TenantSettings, error)
	SaveSettings(ctx context.Context, s *TenantSettings) error

	FindMembership(ctx context.Context, userID, tenantID string) (*TenantMembership, error)
	FindMembershipsByUser(ctx context.Context, userID string) ([]TenantMembership, error)
	FindDefaultMembership(ctx context.Context, userID string) (*TenantMembership, error)
	FindFirstActiveMembership(ctx context.Context, userID string) (*TenantMembership, error)
	ClearDefaultFlags(ctx context.Context, userID, exceptMembershipID string) error
	UpdateMembership(ctx context.Context, m *TenantMembership) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) FindActiveByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindActiveBySlug(ctx context.Context, slug string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&t, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).
		Preload("Settings").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Tenant{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) FindSettings(ctx context.Context, tenantID string) (*TenantSettings, error) {
	var s TenantSettings
	err := r.db.WithContext(ctx).
		First(&s, "tenant_id = ?", tenantID).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) SaveSettings(ctx context.Context, s *TenantSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) FindMembership(ctx context.Context, userID, tenantID string) (*TenantMembership, error) {
	var m TenantMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("tenant_id = ?", tenantID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindMembershipsByUser(ctx context.Context, userID string) ([]TenantMembership, error) {
	var ms []TenantMembership
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&ms).Error
	return ms, err
}

func (r *repository) FindDefaultMembership(ctx context.Context, userID string) (*TenantMembership, error) {
	var m TenantMembership
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("user_id = ?", userID).
		Where("is_default = ?", true).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindFirstActiveMembership(ctx context.Context, userID string) (*TenantMembership, error) {
	var m TenantMembership
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Joins("JOIN tenants ON tenants.id = tenant_memberships.tenant_id").
		Where("tenant_memberships.user_id = ?", userID).
		Where("tenants.is_active = ?", true).
		Order("tenant_memberships.created_at ASC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ClearDefaultFlags(ctx context.Context, userID, exceptMembershipID string) error {
	return r.db.WithContext(ctx).
		Model(&TenantMembership{}).
		Where("user_id = ?", userID).
		Where("id <> ?", exceptMembershipID).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}

func (r *repository) UpdateMembership(ctx context.Context, m *TenantMembership) error {
	return r.db.WithContext(ctx).Save(m).Error
}
