package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type HolidayRepository interface {
	WithTx(tx *sql.Tx) HolidayRepository
	Create(ctx context.Context, h *Holiday) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Holiday, error)
	FindByNaturalKey(ctx context.Context, tenantID, country string, date time.Time, name string) (*Holiday, error)
	FindAllByTenant(ctx context.Context, tenantID string) ([]Holiday, error)
	FindMatching(ctx context.Context, tenantID string, from, to time.Time, departmentCountry string) ([]Holiday, error)
	FindUpcoming(ctx context.Context, tenantID string, from time.Time, limit int) ([]Holiday, error)
	Update(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, tenantID, id string) error
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) WithTx(tx *sql.Tx) HolidayRepository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *holidayRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holidayRepository) FindByNaturalKey(ctx context.Context, tenantID, country string, date time.Time, name string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("country = ?", country).
		Where("date = ?", date.Format("2006-01-02")).
		Where("name = ?", name).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holidayRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

// FindMatching returns holidays applicable to an employee: company-wide
// rows (empty country) always match; country rows only when the
// employee's department country equals them. No department country
// means company-wide only.
func (r *holidayRepository) FindMatching(ctx context.Context, tenantID string, from, to time.Time, departmentCountry string) ([]Holiday, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02"))

	if departmentCountry == "" {
		q = q.Where("country = ''")
	} else {
		q = q.Where("country = '' OR country = ?", departmentCountry)
	}

	var holidays []Holiday
	err := q.Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepository) FindUpcoming(ctx context.Context, tenantID string, from time.Time, limit int) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("date >= ?", from.Format("2006-01-02")).
		Order("date ASC").
		Limit(limit).
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepository) Update(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *holidayRepository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Holiday{}, "id = ?", id).Error
}
