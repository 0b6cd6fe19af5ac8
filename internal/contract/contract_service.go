package contract

import (
	"context"
	"errors"
	"strings"
	"time"

	contracterrors "go-hrm/internal/contract/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=contract_service.go -destination=mock/contract_service_mock.go -package=mock
type Service interface {
	CreateType(ctx context.Context, tenantID string, req CreateContractTypeRequest) (ContractTypeResponse, error)
	GetTypes(ctx context.Context, tenantID string) ([]ContractTypeResponse, error)
	UpdateType(ctx context.Context, tenantID, id string, req UpdateContractTypeRequest) (ContractTypeResponse, error)
	DeleteType(ctx context.Context, tenantID, id string) error

	Create(ctx context.Context, tenantID string, req CreateContractRequest) (ContractResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]ContractResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (ContractResponse, error)
	GetByEmployee(ctx context.Context, tenantID, employeeID string) ([]ContractResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateContractRequest) (ContractResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("contract.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateType(ctx context.Context, tenantID string, req CreateContractTypeRequest) (ContractTypeResponse, error) {
	ct := &ContractType{
		ID:          uuid.New(),
		TenantID:    uuid.MustParse(tenantID),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.CreateType(ctx, ct); err != nil {
		s.logger.Error("create contract type failed", zap.Error(err))
		return ContractTypeResponse{}, mapRepositoryError(err)
	}
	return mapTypeToResponse(*ct), nil
}

func (s *service) GetTypes(ctx context.Context, tenantID string) ([]ContractTypeResponse, error) {
	types, err := s.repo.FindTypesByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("get contract types failed", zap.Error(err))
		return nil, err
	}

	res := make([]ContractTypeResponse, len(types))
	for i, ct := range types {
		res[i] = mapTypeToResponse(ct)
	}
	return res, nil
}

func (s *service) UpdateType(ctx context.Context, tenantID, id string, req UpdateContractTypeRequest) (ContractTypeResponse, error) {
	ct, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractTypeResponse{}, contracterrors.ErrContractTypeNotFound
		}
		return ContractTypeResponse{}, err
	}

	ct.Name = req.Name
	ct.Description = req.Description
	if req.IsActive != nil {
		ct.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateType(ctx, ct); err != nil {
		s.logger.Error("update contract type failed", zap.Error(err))
		return ContractTypeResponse{}, mapRepositoryError(err)
	}
	return mapTypeToResponse(*ct), nil
}

// DeleteType refuses while contracts still reference the type.
func (s *service) DeleteType(ctx context.Context, tenantID, id string) error {
	if _, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contracterrors.ErrContractTypeNotFound
		}
		return err
	}

	refs, err := s.repo.CountContractsByType(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return contracterrors.ErrContractTypeInUse
	}

	return s.repo.DeleteType(ctx, tenantID, id)
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateContractRequest) (ContractResponse, error) {
	ok, err := s.repo.EmployeeExists(ctx, tenantID, req.EmployeeID)
	if err != nil {
		return ContractResponse{}, err
	}
	if !ok {
		return ContractResponse{}, contracterrors.ErrEmployeeNotFound
	}

	if _, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, req.ContractTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractResponse{}, contracterrors.ErrContractTypeNotFound
		}
		return ContractResponse{}, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ContractResponse{}, contracterrors.ErrInvalidDate
	}
	salary, err := decimal.NewFromString(req.Salary)
	if err != nil {
		return ContractResponse{}, contracterrors.ErrInvalidSalary
	}

	c := &Contract{
		ID:               uuid.New(),
		TenantID:         uuid.MustParse(tenantID), // selalu dari context, bukan dari client
		EmployeeID:       uuid.MustParse(req.EmployeeID),
		ContractTypeID:   uuid.MustParse(req.ContractTypeID),
		StartDate:        start,
		EndDate:          datePtr(req.EndDate),
		Status:           StatusDraft,
		Salary:           salary,
		Currency:         defaultString(req.Currency, "EUR"),
		SalaryPeriod:     defaultString(req.SalaryPeriod, SalaryPeriodMonthly),
		HoursPerWeek:     decimalOrDefault(req.HoursPerWeek, decimal.NewFromInt(40)),
		ProbationEndDate: datePtr(req.ProbationEndDate),
		NoticePeriodDays: req.NoticePeriodDays,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("create contract failed", zap.Error(err))
		return ContractResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create contract success",
		zap.String("tenant_id", tenantID),
		zap.String("contract_id", c.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, tenantID string) ([]ContractResponse, error) {
	contracts, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("get contracts failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(contracts), nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (ContractResponse, error) {
	c, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return ContractResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) GetByEmployee(ctx context.Context, tenantID, employeeID string) ([]ContractResponse, error) {
	contracts, err := s.repo.FindByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		s.logger.Error("get contracts by employee failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(contracts), nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, req UpdateContractRequest) (ContractResponse, error) {
	c, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return ContractResponse{}, mapRepositoryError(err)
	}

	c.EndDate = datePtr(req.EndDate)
	if req.Status != "" {
		c.Status = req.Status
	}
	if req.Salary != "" {
		salary, err := decimal.NewFromString(req.Salary)
		if err != nil {
			return ContractResponse{}, contracterrors.ErrInvalidSalary
		}
		c.Salary = salary
	}
	if req.Currency != "" {
		c.Currency = req.Currency
	}
	if req.SalaryPeriod != "" {
		c.SalaryPeriod = req.SalaryPeriod
	}
	if req.HoursPerWeek != "" {
		c.HoursPerWeek = decimalOrDefault(req.HoursPerWeek, c.HoursPerWeek)
	}
	c.ProbationEndDate = datePtr(req.ProbationEndDate)
	if req.NoticePeriodDays > 0 {
		c.NoticePeriodDays = req.NoticePeriodDays
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("update contract failed", zap.Error(err))
		return ContractResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("delete contract failed", zap.Error(err))
		return err
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contracterrors.ErrContractNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_contract_types_tenant_code" {
			return contracterrors.ErrContractTypeCodeAlreadyExists
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_contract_types_tenant_code") {
		return contracterrors.ErrContractTypeCodeAlreadyExists
	}

	return err
}

func mapTypeToResponse(ct ContractType) ContractTypeResponse {
	return ContractTypeResponse{
		ID:          ct.ID.String(),
		Code:        ct.Code,
		Name:        ct.Name,
		Description: ct.Description,
		IsActive:    ct.IsActive,
	}
}

func mapToResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:               c.ID.String(),
		EmployeeID:       c.EmployeeID.String(),
		ContractTypeID:   c.ContractTypeID.String(),
		StartDate:        c.StartDate.Format("2006-01-02"),
		Status:           c.Status,
		Salary:           c.Salary.String(),
		Currency:         c.Currency,
		SalaryPeriod:     c.SalaryPeriod,
		HoursPerWeek:     c.HoursPerWeek.String(),
		NoticePeriodDays: c.NoticePeriodDays,
	}
	if c.EndDate != nil {
		resp.EndDate = c.EndDate.Format("2006-01-02")
	}
	if c.ProbationEndDate != nil {
		resp.ProbationEndDate = c.ProbationEndDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(contracts []Contract) []ContractResponse {
	res := make([]ContractResponse, len(contracts))
	for i, c := range contracts {
		res[i] = mapToResponse(c)
	}
	return res
}

func datePtr(v string) *time.Time {
	if v == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &d
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func decimalOrDefault(v string, def decimal.Decimal) decimal.Decimal {
	if v == "" {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return def
	}
	return d
}
