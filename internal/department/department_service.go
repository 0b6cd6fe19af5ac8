package department

import (
	"context"
	"database/sql"
	"errors"

	departmenterrors "go-hrm/internal/department/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidTenantID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		TenantID:    tenantUUID, // selalu dari context, bukan dari client
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Country:     req.Country,
		IsActive:    true,
	}
	if dept.ParentID, err = parseOptionalUUID(req.ParentID); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	if dept.ManagerID, err = parseOptionalUUID(req.ManagerID); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, tenantID string) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = req.Name
	dept.Description = req.Description
	dept.Country = req.Country
	if dept.ParentID, err = parseOptionalUUID(req.ParentID); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	if dept.ManagerID, err = parseOptionalUUID(req.ManagerID); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func parseOptionalUUID(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "uq_departments_tenant_code" {
			return departmenterrors.ErrDepartmentCodeAlreadyExists
		}
	}

	return err
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          dept.ID.String(),
		TenantID:    dept.TenantID.String(),
		Name:        dept.Name,
		Code:        dept.Code,
		Description: dept.Description,
		Country:     dept.Country,
		IsActive:    dept.IsActive,
	}
	if dept.ParentID != nil {
		v := dept.ParentID.String()
		resp.ParentID = &v
	}
	if dept.ManagerID != nil {
		v := dept.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
