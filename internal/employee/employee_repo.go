package employee

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]Employee, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Employee, error)
	FindByUser(ctx context.Context, tenantID, userID string) (*Employee, error)
	FindOptionsByTenant(ctx context.Context, tenantID string) ([]Employee, error)
	DepartmentExists(ctx context.Context, tenantID, departmentID string) (bool, error)
	PositionExists(ctx context.Context, tenantID, positionID string) (bool, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("employee_code ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindByUser resolves the employee record behind the acting user.
// Leave endpoints use this to answer "which employee is requesting".
func (r *repository) FindByUser(ctx context.Context, tenantID, userID string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&empl, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindOptionsByTenant(ctx context.Context, tenantID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Select("id", "tenant_id", "employee_code", "first_name", "last_name", "email", "status").
		Where("status = ?", StatusActive).
		Order("first_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) DepartmentExists(ctx context.Context, tenantID, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ?", departmentID).
		Where("tenant_id = ?", tenantID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) PositionExists(ctx context.Context, tenantID, positionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("positions").
		Where("id = ?", positionID).
		Where("tenant_id = ?", tenantID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Employee{}, "id = ?", id).Error
}
