package timesheet

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, ts *Timesheet) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Timesheet, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]Timesheet, error)
	FindSubmittedByTenant(ctx context.Context, tenantID string) ([]Timesheet, error)
	FindEmployeeIDByUser(ctx context.Context, tenantID, userID string) (string, error)
	SumApprovedHours(ctx context.Context, tenantID, employeeID string, from, to time.Time) (decimal.Decimal, error)
	Update(ctx context.Context, ts *Timesheet) error
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

func (r *repository) Create(ctx context.Context, ts *Timesheet) error {
	return r.db.WithContext(ctx).Create(ts).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Timesheet, error) {
	var ts Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&ts, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *repository) FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]Timesheet, error) {
	var sheets []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Order("period_start DESC").
		Find(&sheets).Error
	return sheets, err
}

func (r *repository) FindSubmittedByTenant(ctx context.Context, tenantID string) ([]Timesheet, error) {
	var sheets []Timesheet
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", StatusSubmitted).
		Order("period_start ASC").
		Find(&sheets).Error
	return sheets, err
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

// SumApprovedHours totals approved time entries inside the period; used
// to fill total_hours at submit time.
func (r *repository) SumApprovedHours(ctx context.Context, tenantID, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Table("time_entries").
		Select("SUM(duration_hours)").
		Where("tenant_id = ?", tenantID).
		Where("employee_id = ?", employeeID).
		Where("status = ?", "approved").
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Where("deleted_at IS NULL").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) Update(ctx context.Context, ts *Timesheet) error {
	return r.db.WithContext(ctx).Save(ts).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Timesheet{}, "id = ?", id).Error
}
