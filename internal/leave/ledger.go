package leave

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger is the only code path allowed to mutate LeaveBalance rows.
// Adjustments run inside the caller's transaction so a workflow
// transition and its balance effect commit or roll back together.
//
//go:generate mockgen -source=ledger.go -destination=mock/ledger_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	GetOrCreate(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	AdjustUsed(ctx context.Context, balanceID string, delta decimal.Decimal) error
	FindByEmployeeAndYear(ctx context.Context, tenantID, employeeID string, year int) ([]LeaveBalance, error)
	SetEntitlement(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int, entitled, carriedOver decimal.Decimal) (*LeaveBalance, error)
}

type ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	db := l.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &ledger{db: db}
}

// GetOrCreate relies on the (tenant, employee, leave_type, year) unique
// index: a concurrent insert loses the race and is re-read.
func (l *ledger) GetOrCreate(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	balance, err := l.find(ctx, tenantID, employeeID, leaveTypeID, year)
	if err == nil {
		return balance, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	fresh := &LeaveBalance{
		TenantID:     uuid.MustParse(tenantID),
		EmployeeID:   uuid.MustParse(employeeID),
		LeaveTypeID:  uuid.MustParse(leaveTypeID),
		Year:         year,
		EntitledDays: decimal.Zero,
		UsedDays:     decimal.Zero,
		CarriedOver:  decimal.Zero,
	}
	if err := l.db.WithContext(ctx).Create(fresh).Error; err != nil {
		// Lost the insert race; the row exists now.
		existing, findErr := l.find(ctx, tenantID, employeeID, leaveTypeID, year)
		if findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return fresh, nil
}

// AdjustUsed applies the signed delta as a single UPDATE expression so
// concurrent adjustments never lose updates. No floor: remaining may go
// negative (overdraft allowed).
func (l *ledger) AdjustUsed(ctx context.Context, balanceID string, delta decimal.Decimal) error {
	return l.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("id = ?", balanceID).
		UpdateColumn("used_days", gorm.Expr("used_days + ?", delta)).Error
}

func (l *ledger) FindByEmployeeAndYear(ctx context.Context, tenantID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := l.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Find(&balances).Error
	return balances, err
}

func (l *ledger) SetEntitlement(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int, entitled, carriedOver decimal.Decimal) (*LeaveBalance, error) {
	balance, err := l.GetOrCreate(ctx, tenantID, employeeID, leaveTypeID, year)
	if err != nil {
		return nil, err
	}

	balance.EntitledDays = entitled
	balance.CarriedOver = carriedOver
	if err := l.db.WithContext(ctx).Save(balance).Error; err != nil {
		return nil, err
	}
	return balance, nil
}

func (l *ledger) find(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	var balance LeaveBalance
	err := l.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}
