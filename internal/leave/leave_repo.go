package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRef is the slice of an employee record the workflow needs:
// identity plus the department country used for holiday matching.
type EmployeeRef struct {
	ID                string
	UserID            string
	FullName          string
	DepartmentCountry string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, lt *LeaveType) error
	FindTypesByTenant(ctx context.Context, tenantID string) ([]LeaveType, error)
	FindTypeByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveType, error)
	UpdateType(ctx context.Context, lt *LeaveType) error
	DeleteType(ctx context.Context, tenantID, id string) error
	CountRequestsByType(ctx context.Context, tenantID, leaveTypeID string) (int64, error)

	CreateRequest(ctx context.Context, req *LeaveRequest) error
	FindRequestByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveRequest, error)
	FindRequestByIDAndTenantForUpdate(ctx context.Context, tenantID, id string) (*LeaveRequest, error)
	FindRequestsByEmployee(ctx context.Context, tenantID, employeeID string) ([]LeaveRequest, error)
	FindPendingByTenant(ctx context.Context, tenantID string) ([]LeaveRequest, error)
	FindRequestsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]LeaveRequest, error)
	UpdateRequest(ctx context.Context, req *LeaveRequest) error
	SumPendingDays(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (decimal.Decimal, error)

	FindEmployeeRefByID(ctx context.Context, tenantID, employeeID string) (*EmployeeRef, error)
	FindEmployeeRefByUser(ctx context.Context, tenantID, userID string) (*EmployeeRef, error)
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

func (r *repository) CreateType(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindTypesByTenant(ctx context.Context, tenantID string) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("code ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&lt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) UpdateType(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) DeleteType(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&LeaveType{}, "id = ?", id).Error
}

func (r *repository) CountRequestsByType(ctx context.Context, tenantID, leaveTypeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(tenantID)).
		Where("leave_type_id = ?", leaveTypeID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindRequestByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindRequestByIDAndTenantForUpdate locks the request row so two
// concurrent transitions cannot both read the pending status.
func (r *repository) FindRequestByIDAndTenantForUpdate(ctx context.Context, tenantID, id string) (*LeaveRequest, error) {
	var req LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(tenantID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindRequestsByEmployee(ctx context.Context, tenantID, employeeID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindPendingByTenant(ctx context.Context, tenantID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindRequestsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ?", to).
		Where("end_date >= ?", from).
		Order("start_date ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) UpdateRequest(ctx context.Context, req *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

// SumPendingDays totals days_requested of pending requests starting in
// the given year, for the balance summary's "pending" column.
func (r *repository) SumPendingDays(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("status = ?", StatusPending).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Select("SUM(days_requested)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) FindEmployeeRefByID(ctx context.Context, tenantID, employeeID string) (*EmployeeRef, error) {
	return r.findEmployeeRef(ctx, tenantID, "e.id = ?", employeeID)
}

func (r *repository) FindEmployeeRefByUser(ctx context.Context, tenantID, userID string) (*EmployeeRef, error) {
	return r.findEmployeeRef(ctx, tenantID, "e.user_id = ?", userID)
}

func (r *repository) findEmployeeRef(ctx context.Context, tenantID, cond string, arg any) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select(
			"e.id::text AS id",
			"COALESCE(e.user_id::text, '') AS user_id",
			"e.first_name || ' ' || e.last_name AS full_name",
			"COALESCE(d.country, '') AS department_country",
		).
		Joins("LEFT JOIN departments d ON d.id = e.department_id AND d.deleted_at IS NULL").
		Where("e.tenant_id = ?", tenantID).
		Where("e.deleted_at IS NULL").
		Where(cond, arg).
		Take(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
