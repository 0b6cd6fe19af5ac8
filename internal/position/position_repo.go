package position

import (
	"context"
	"database/sql"

	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Position) error
	FindAllByTenant(ctx context.Context, tenantID string) ([]Position, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Position, error)
	Update(ctx context.Context, p *Position) error
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

func (r *repository) Create(ctx context.Context, p *Position) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Position, error) {
	var positions []Position
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("title ASC").
		Find(&positions).Error
	return positions, err
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Position, error) {
	var p Position
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Position) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Position{}, "id = ?", id).Error
}
