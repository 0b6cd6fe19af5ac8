package timetracking

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timetracking_repo.go -destination=mock/timetracking_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, tet *TimeEntryType) error
	FindTypesByTenant(ctx context.Context, tenantID string) ([]TimeEntryType, error)
	FindTypeByIDAndTenant(ctx context.Context, tenantID, id string) (*TimeEntryType, error)
	UpdateType(ctx context.Context, tet *TimeEntryType) error
	DeleteType(ctx context.Context, tenantID, id string) error

	Create(ctx context.Context, te *TimeEntry) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*TimeEntry, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]TimeEntry, error)
	FindPendingByTenant(ctx context.Context, tenantID string) ([]TimeEntry, error)
	FindEmployeeIDByUser(ctx context.Context, tenantID, userID string) (string, error)
	Update(ctx context.Context, te *TimeEntry) error
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

func (r *repository) CreateType(ctx context.Context, tet *TimeEntryType) error {
	return r.db.WithContext(ctx).Create(tet).Error
}

func (r *repository) FindTypesByTenant(ctx context.Context, tenantID string) ([]TimeEntryType, error) {
	var types []TimeEntryType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("code ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByIDAndTenant(ctx context.Context, tenantID, id string) (*TimeEntryType, error) {
	var tet TimeEntryType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&tet, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tet, nil
}

func (r *repository) UpdateType(ctx context.Context, tet *TimeEntryType) error {
	return r.db.WithContext(ctx).Save(tet).Error
}

func (r *repository) DeleteType(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&TimeEntryType{}, "id = ?", id).Error
}

func (r *repository) Create(ctx context.Context, te *TimeEntry) error {
	return r.db.WithContext(ctx).Create(te).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*TimeEntry, error) {
	var te TimeEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&te, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &te, nil
}

func (r *repository) FindByEmployee(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]TimeEntry, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID)
	if !from.IsZero() {
		q = q.Where("date >= ?", from.Format("2006-01-02"))
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", to.Format("2006-01-02"))
	}

	var entries []TimeEntry
	err := q.Order("date DESC, start_time DESC").Find(&entries).Error
	return entries, err
}

func (r *repository) FindPendingByTenant(ctx context.Context, tenantID string) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", StatusPending).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindEmployeeIDByUser(ctx context.Context, tenantID, userID string) (string, error) {
	var id string
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id::text").
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Take(&id).Error
	return id, err
}

func (r *repository) Update(ctx context.Context, te *TimeEntry) error {
	return r.db.WithContext(ctx).Save(te).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&TimeEntry{}, "id = ?", id).Error
}
