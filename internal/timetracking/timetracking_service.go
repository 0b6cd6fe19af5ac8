package timetracking

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound, "Time entry not found", http.StatusNotFound)
	ErrTimeEntryTypeNotFound = apperror.New(
		apperror.CodeNotFound, "Time entry type not found", http.StatusNotFound)
	ErrTypeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict, "Time entry type code already exists in this tenant", http.StatusConflict)
	ErrInvalidClockTimes = apperror.New(
		apperror.CodeInvalidInput, "start_time/end_time must be HH:MM and end after start", http.StatusBadRequest)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeNotFound, "No employee profile linked to this user in the current tenant", http.StatusNotFound)
	ErrNotEntryOwner = apperror.New(
		apperror.CodeForbidden, "Only the owning employee may modify this time entry", http.StatusForbidden)
	ErrEntryNotPending = apperror.New(
		apperror.CodeInvalidState, "Time entry has already been reviewed", http.StatusConflict)
	ErrApprovalRoleRequired = apperror.New(
		apperror.CodeForbidden, "Only owner, admin or manager roles may approve time entries", http.StatusForbidden)
)

// RoleSource matches tenant.Service.
type RoleSource interface {
	RoleFor(ctx context.Context, userID, tenantID string) (string, error)
}

//go:generate mockgen -source=timetracking_service.go -destination=mock/timetracking_service_mock.go -package=mock
type Service interface {
	CreateType(ctx context.Context, tenantID string, req CreateTimeEntryTypeRequest) (TimeEntryTypeResponse, error)
	GetTypes(ctx context.Context, tenantID string) ([]TimeEntryTypeResponse, error)
	DeleteType(ctx context.Context, tenantID, id string) error

	Create(ctx context.Context, tenantID, userID string, req CreateTimeEntryRequest) (TimeEntryResponse, error)
	MyEntries(ctx context.Context, tenantID, userID, from, to string) ([]TimeEntryResponse, error)
	PendingEntries(ctx context.Context, tenantID, userID string) ([]TimeEntryResponse, error)
	Update(ctx context.Context, tenantID, userID, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error)
	Approve(ctx context.Context, tenantID, userID, id string) (TimeEntryResponse, error)
	Delete(ctx context.Context, tenantID, userID, id string) error
}

type service struct {
	repo   Repository
	roles  RoleSource
	logger *zap.Logger
}

func NewService(repo Repository, roles RoleSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("timetracking.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timetracking.service")
	}
	return &service{repo: repo, roles: roles, logger: l}
}

func (s *service) CreateType(ctx context.Context, tenantID string, req CreateTimeEntryTypeRequest) (TimeEntryTypeResponse, error) {
	multiplier := decimal.NewFromInt(1)
	if req.PayMultiplier != "" {
		var err error
		multiplier, err = decimal.NewFromString(req.PayMultiplier)
		if err != nil {
			return TimeEntryTypeResponse{}, apperror.New(
				apperror.CodeInvalidInput, "pay_multiplier must be a valid decimal", http.StatusBadRequest)
		}
	}

	tet := &TimeEntryType{
		ID:            uuid.New(),
		TenantID:      uuid.MustParse(tenantID),
		Code:          req.Code,
		Name:          req.Name,
		PayMultiplier: multiplier,
		IsActive:      true,
	}
	if err := s.repo.CreateType(ctx, tet); err != nil {
		s.logger.Error("create time entry type failed", zap.Error(err))
		return TimeEntryTypeResponse{}, mapRepositoryError(err)
	}
	return mapTypeToResponse(*tet), nil
}

func (s *service) GetTypes(ctx context.Context, tenantID string) ([]TimeEntryTypeResponse, error) {
	types, err := s.repo.FindTypesByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	res := make([]TimeEntryTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapTypeToResponse(t)
	}
	return res, nil
}

func (s *service) DeleteType(ctx context.Context, tenantID, id string) error {
	if _, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeEntryTypeNotFound
		}
		return err
	}
	return s.repo.DeleteType(ctx, tenantID, id)
}

func (s *service) Create(ctx context.Context, tenantID, userID string, req CreateTimeEntryRequest) (TimeEntryResponse, error) {
	employeeID, err := s.repo.FindEmployeeIDByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, ErrNoEmployeeProfile
		}
		return TimeEntryResponse{}, err
	}

	if _, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, req.TimeEntryTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, ErrTimeEntryTypeNotFound
		}
		return TimeEntryResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return TimeEntryResponse{}, ErrInvalidDate
	}
	duration, err := computeDuration(req.StartTime, req.EndTime, req.BreakMinutes)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	te := &TimeEntry{
		ID:              uuid.New(),
		TenantID:        uuid.MustParse(tenantID),
		EmployeeID:      uuid.MustParse(employeeID),
		TimeEntryTypeID: uuid.MustParse(req.TimeEntryTypeID),
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		BreakMinutes:    req.BreakMinutes,
		DurationHours:   duration,
		Description:     req.Description,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, te); err != nil {
		s.logger.Error("create time entry failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create time entry success",
		zap.String("tenant_id", tenantID),
		zap.String("time_entry_id", te.ID.String()),
		zap.String("duration_hours", duration.String()),
	)
	return mapToResponse(*te), nil
}

func (s *service) MyEntries(ctx context.Context, tenantID, userID, from, to string) ([]TimeEntryResponse, error) {
	employeeID, err := s.repo.FindEmployeeIDByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEmployeeProfile
		}
		return nil, err
	}

	var fromDate, toDate time.Time
	if from != "" {
		fromDate, _ = time.Parse("2006-01-02", from)
	}
	if to != "" {
		toDate, _ = time.Parse("2006-01-02", to)
	}

	entries, err := s.repo.FindByEmployee(ctx, tenantID, employeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) PendingEntries(ctx context.Context, tenantID, userID string) ([]TimeEntryResponse, error) {
	if err := s.requireApprovalRole(ctx, userID, tenantID); err != nil {
		return nil, err
	}

	entries, err := s.repo.FindPendingByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) Update(ctx context.Context, tenantID, userID, id string, req UpdateTimeEntryRequest) (TimeEntryResponse, error) {
	te, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	if err := s.requireOwner(ctx, tenantID, userID, te); err != nil {
		return TimeEntryResponse{}, err
	}
	if te.Status != StatusPending {
		return TimeEntryResponse{}, ErrEntryNotPending
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return TimeEntryResponse{}, ErrInvalidDate
	}
	duration, err := computeDuration(req.StartTime, req.EndTime, req.BreakMinutes)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	te.Date = date
	te.StartTime = req.StartTime
	te.EndTime = req.EndTime
	te.BreakMinutes = req.BreakMinutes
	te.DurationHours = duration
	te.Description = req.Description

	if err := s.repo.Update(ctx, te); err != nil {
		s.logger.Error("update time entry failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*te), nil
}

func (s *service) Approve(ctx context.Context, tenantID, userID, id string) (TimeEntryResponse, error) {
	if err := s.requireApprovalRole(ctx, userID, tenantID); err != nil {
		return TimeEntryResponse{}, err
	}

	te, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	if te.Status != StatusPending {
		return TimeEntryResponse{}, ErrEntryNotPending
	}

	approver := uuid.MustParse(userID)
	now := time.Now().UTC()
	te.Status = StatusApproved
	te.ApproverID = &approver
	te.ApprovedAt = &now

	if err := s.repo.Update(ctx, te); err != nil {
		s.logger.Error("approve time entry failed", zap.Error(err))
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("time entry approved",
		zap.String("time_entry_id", id),
		zap.String("approver_id", userID),
	)
	return mapToResponse(*te), nil
}

func (s *service) Delete(ctx context.Context, tenantID, userID, id string) error {
	te, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.requireOwner(ctx, tenantID, userID, te); err != nil {
		return err
	}
	if te.Status != StatusPending {
		return ErrEntryNotPending
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *service) requireOwner(ctx context.Context, tenantID, userID string, te *TimeEntry) error {
	employeeID, err := s.repo.FindEmployeeIDByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEmployeeProfile
		}
		return err
	}
	if employeeID != te.EmployeeID.String() {
		return ErrNotEntryOwner
	}
	return nil
}

func (s *service) requireApprovalRole(ctx context.Context, userID, tenantID string) error {
	role, err := s.roles.RoleFor(ctx, userID, tenantID)
	if err != nil || !tenant.CanApprove(role) {
		return ErrApprovalRoleRequired
	}
	return nil
}

// computeDuration parses HH:MM clock times and returns worked hours
// minus the break.
func computeDuration(start, end string, breakMinutes int) (decimal.Decimal, error) {
	st, err := time.Parse("15:04", start)
	if err != nil {
		return decimal.Zero, ErrInvalidClockTimes
	}
	et, err := time.Parse("15:04", end)
	if err != nil {
		return decimal.Zero, ErrInvalidClockTimes
	}
	minutes := int(et.Sub(st).Minutes()) - breakMinutes
	if minutes <= 0 {
		return decimal.Zero, ErrInvalidClockTimes
	}
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTimeEntryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_time_entry_types_tenant_code" {
			return ErrTypeCodeAlreadyExists
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_time_entry_types_tenant_code") {
		return ErrTypeCodeAlreadyExists
	}
	return err
}

func mapTypeToResponse(t TimeEntryType) TimeEntryTypeResponse {
	return TimeEntryTypeResponse{
		ID:            t.ID.String(),
		Code:          t.Code,
		Name:          t.Name,
		PayMultiplier: t.PayMultiplier.String(),
		IsActive:      t.IsActive,
	}
}

func mapToResponse(te TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:              te.ID.String(),
		EmployeeID:      te.EmployeeID.String(),
		TimeEntryTypeID: te.TimeEntryTypeID.String(),
		Date:            te.Date.Format("2006-01-02"),
		StartTime:       te.StartTime,
		EndTime:         te.EndTime,
		BreakMinutes:    te.BreakMinutes,
		DurationHours:   te.DurationHours.String(),
		Description:     te.Description,
		Status:          te.Status,
	}
	if te.ApproverID != nil {
		resp.ApproverID = te.ApproverID.String()
	}
	if te.ApprovedAt != nil {
		resp.ApprovedAt = te.ApprovedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(entries []TimeEntry) []TimeEntryResponse {
	res := make([]TimeEntryResponse, len(entries))
	for i, te := range entries {
		res[i] = mapToResponse(te)
	}
	return res
}
