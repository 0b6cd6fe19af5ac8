package position

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-hrm/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPositionNotFound = apperror.New(apperror.CodeNotFound, "position not found", http.StatusNotFound)
	ErrInvalidTenantID  = apperror.New(apperror.CodeInvalidInput, "invalid tenant id", http.StatusBadRequest)
	ErrInvalidDepartmentID = apperror.New(apperror.CodeInvalidInput, "invalid department id", http.StatusBadRequest)
)

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]PositionResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (PositionResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreatePositionRequest) (PositionResponse, error) {
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return PositionResponse{}, ErrInvalidTenantID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	level := req.Level
	if level == 0 {
		level = 1
	}

	p := &Position{
		ID:          uuid.New(),
		TenantID:    tenantUUID,
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		Level:       level,
		IsActive:    true,
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return PositionResponse{}, ErrInvalidDepartmentID
		}
		p.DepartmentID = &deptID
	}

	if err := qtx.Create(ctx, p); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, tenantID string) ([]PositionResponse, error) {
	positions, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (PositionResponse, error) {
	p, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, ErrPositionNotFound
		}
		return PositionResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, req UpdatePositionRequest) (PositionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, ErrPositionNotFound
		}
		return PositionResponse{}, err
	}

	p.Title = req.Title
	p.Code = req.Code
	p.Description = req.Description
	if req.Level > 0 {
		p.Level = req.Level
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.DepartmentID = nil
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return PositionResponse{}, ErrInvalidDepartmentID
		}
		p.DepartmentID = &deptID
	}

	if err := qtx.Update(ctx, p); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(p Position) PositionResponse {
	resp := PositionResponse{
		ID:          p.ID.String(),
		TenantID:    p.TenantID.String(),
		Title:       p.Title,
		Code:        p.Code,
		Description: p.Description,
		Level:       p.Level,
		IsActive:    p.IsActive,
	}
	if p.DepartmentID != nil {
		v := p.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}
