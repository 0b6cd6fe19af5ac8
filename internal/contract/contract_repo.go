package contract

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=contract_repo.go -destination=mock/contract_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, ct *ContractType) error
	FindTypesByTenant(ctx context.Context, tenantID string) ([]ContractType, error)
	FindTypeByIDAndTenant(ctx context.Context, tenantID, id string) (*ContractType, error)
	UpdateType(ctx context.Context, ct *ContractType) error
	DeleteType(ctx context.Context, tenantID, id string) error
	CountContractsByType(ctx context.Context, tenantID, typeID string) (int64, error)

	Create(ctx context.Context, c *Contract) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]Contract, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Contract, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]Contract, error)
	EmployeeExists(ctx context.Context, tenantID, employeeID string) (bool, error)
	Update(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, tenantID, id string) error
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

func (r *repository) CreateType(ctx context.Context, ct *ContractType) error {
	return r.db.WithContext(ctx).Create(ct).Error
}

func (r *repository) FindTypesByTenant(ctx context.Context, tenantID string) ([]ContractType, error) {
	var types []ContractType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("code ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByIDAndTenant(ctx context.Context, tenantID, id string) (*ContractType, error) {
	var ct ContractType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&ct, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *repository) UpdateType(ctx context.Context, ct *ContractType) error {
	return r.db.WithContext(ctx).Save(ct).Error
}

func (r *repository) DeleteType(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&ContractType{}, "id = ?", id).Error
}

func (r *repository) CountContractsByType(ctx context.Context, tenantID, typeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Contract{}).
		Scopes(tenant.Scope(tenantID)).
		Where("contract_type_id = ?", typeID).
		Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Contract, error) {
	var c Contract
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) EmployeeExists(ctx context.Context, tenantID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("tenant_id = ?", tenantID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Contract{}, "id = ?", id).Error
}
