package timesheet

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
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound, "Timesheet not found", http.StatusNotFound)
	ErrPeriodAlreadyExists = apperror.New(
		apperror.CodeConflict, "A timesheet for this period already exists", http.StatusConflict)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput, "period_end must not be before period_start", http.StatusBadRequest)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeNotFound, "No employee profile linked to this user in the current tenant", http.StatusNotFound)
	ErrNotTimesheetOwner = apperror.New(
		apperror.CodeForbidden, "Only the owning employee may modify this timesheet", http.StatusForbidden)
	ErrApprovalRoleRequired = apperror.New(
		apperror.CodeForbidden, "Only owner, admin or manager roles may review timesheets", http.StatusForbidden)
)

func invalidTransition(current string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		"Timesheet status is '"+current+"', the requested action is not allowed",
		http.StatusConflict,
	)
}

// RoleSource matches tenant.Service.
type RoleSource interface {
	RoleFor(ctx context.Context, userID, tenantID string) (string, error)
}

// StandardHours yields the expected working hours for a period, used
// to split total into regular and overtime. Satisfied by the tenant
// settings lookup in the registry.
type StandardHours func(ctx context.Context, tenantID string, days int) (decimal.Decimal, error)

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID, userID string, req CreateTimesheetRequest) (TimesheetResponse, error)
	MyTimesheets(ctx context.Context, tenantID, userID string) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (TimesheetResponse, error)
	Submitted(ctx context.Context, tenantID, userID string) ([]TimesheetResponse, error)
	Submit(ctx context.Context, tenantID, userID, id string) (TimesheetResponse, error)
	Approve(ctx context.Context, tenantID, userID, id, notes string) (TimesheetResponse, error)
	Reject(ctx context.Context, tenantID, userID, id, notes string) (TimesheetResponse, error)
	Delete(ctx context.Context, tenantID, userID, id string) error
}

type service struct {
	repo          Repository
	roles         RoleSource
	standardHours StandardHours
	logger        *zap.Logger
}

func NewService(repo Repository, roles RoleSource, standardHours StandardHours, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{repo: repo, roles: roles, standardHours: standardHours, logger: l}
}

func (s *service) Create(ctx context.Context, tenantID, userID string, req CreateTimesheetRequest) (TimesheetResponse, error) {
	employeeID, err := s.employeeFor(ctx, tenantID, userID)
	if err != nil {
		return TimesheetResponse{}, err
	}

	start, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return TimesheetResponse{}, ErrInvalidPeriod
	}
	end, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil || end.Before(start) {
		return TimesheetResponse{}, ErrInvalidPeriod
	}

	ts := &Timesheet{
		ID:            uuid.New(),
		TenantID:      uuid.MustParse(tenantID), // selalu dari context, bukan dari client
		EmployeeID:    uuid.MustParse(employeeID),
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalHours:    decimal.Zero,
		OvertimeHours: decimal.Zero,
		Status:        StatusDraft,
	}

	if err := s.repo.Create(ctx, ts); err != nil {
		s.logger.Error("create timesheet failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*ts), nil
}

func (s *service) MyTimesheets(ctx context.Context, tenantID, userID string) ([]TimesheetResponse, error) {
	employeeID, err := s.employeeFor(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	sheets, err := s.repo.FindByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(sheets), nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id string) (TimesheetResponse, error) {
	ts, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*ts), nil
}

func (s *service) Submitted(ctx context.Context, tenantID, userID string) ([]TimesheetResponse, error) {
	if err := s.requireApprovalRole(ctx, userID, tenantID); err != nil {
		return nil, err
	}

	sheets, err := s.repo.FindSubmittedByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(sheets), nil
}

// Submit recalculates totals from approved time entries, then moves
// draft (or rejected) to submitted.
func (s *service) Submit(ctx context.Context, tenantID, userID, id string) (TimesheetResponse, error) {
	ts, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	employeeID, err := s.employeeFor(ctx, tenantID, userID)
	if err != nil {
		return TimesheetResponse{}, err
	}
	if employeeID != ts.EmployeeID.String() {
		return TimesheetResponse{}, ErrNotTimesheetOwner
	}

	if !ts.CanTransitionTo(StatusSubmitted) {
		return TimesheetResponse{}, invalidTransition(ts.Status)
	}

	total, err := s.repo.SumApprovedHours(ctx, tenantID, employeeID, ts.PeriodStart, ts.PeriodEnd)
	if err != nil {
		s.logger.Error("submit timesheet sum hours failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	ts.TotalHours = total
	ts.OvertimeHours = decimal.Zero

	if s.standardHours != nil {
		days := int(ts.PeriodEnd.Sub(ts.PeriodStart).Hours()/24) + 1
		expected, err := s.standardHours(ctx, tenantID, days)
		if err == nil && total.GreaterThan(expected) {
			ts.OvertimeHours = total.Sub(expected)
		}
	}

	now := time.Now().UTC()
	ts.Status = StatusSubmitted
	ts.SubmittedAt = &now
	ts.ReviewerID = nil
	ts.ReviewedAt = nil
	ts.ReviewNotes = ""

	if err := s.repo.Update(ctx, ts); err != nil {
		s.logger.Error("submit timesheet failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("timesheet submitted",
		zap.String("timesheet_id", id),
		zap.String("total_hours", total.String()),
	)
	return mapToResponse(*ts), nil
}

func (s *service) Approve(ctx context.Context, tenantID, userID, id, notes string) (TimesheetResponse, error) {
	return s.review(ctx, tenantID, userID, id, notes, StatusApproved)
}

func (s *service) Reject(ctx context.Context, tenantID, userID, id, notes string) (TimesheetResponse, error) {
	return s.review(ctx, tenantID, userID, id, notes, StatusRejected)
}

func (s *service) review(ctx context.Context, tenantID, userID, id, notes, decision string) (TimesheetResponse, error) {
	if err := s.requireApprovalRole(ctx, userID, tenantID); err != nil {
		return TimesheetResponse{}, err
	}

	ts, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	if !ts.CanTransitionTo(decision) {
		return TimesheetResponse{}, invalidTransition(ts.Status)
	}

	reviewer := uuid.MustParse(userID)
	now := time.Now().UTC()
	ts.Status = decision
	ts.ReviewerID = &reviewer
	ts.ReviewedAt = &now
	ts.ReviewNotes = notes

	if err := s.repo.Update(ctx, ts); err != nil {
		s.logger.Error("review timesheet failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("timesheet reviewed",
		zap.String("timesheet_id", id),
		zap.String("decision", decision),
	)
	return mapToResponse(*ts), nil
}

func (s *service) Delete(ctx context.Context, tenantID, userID, id string) error {
	ts, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	employeeID, err := s.employeeFor(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if employeeID != ts.EmployeeID.String() {
		return ErrNotTimesheetOwner
	}
	if ts.Status != StatusDraft {
		return invalidTransition(ts.Status)
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *service) employeeFor(ctx context.Context, tenantID, userID string) (string, error) {
	employeeID, err := s.repo.FindEmployeeIDByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoEmployeeProfile
		}
		return "", err
	}
	return employeeID, nil
}

func (s *service) requireApprovalRole(ctx context.Context, userID, tenantID string) error {
	role, err := s.roles.RoleFor(ctx, userID, tenantID)
	if err != nil || !tenant.CanApprove(role) {
		return ErrApprovalRoleRequired
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTimesheetNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_timesheets_period" {
			return ErrPeriodAlreadyExists
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_timesheets_period") {
		return ErrPeriodAlreadyExists
	}
	return err
}

func mapToResponse(ts Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:            ts.ID.String(),
		EmployeeID:    ts.EmployeeID.String(),
		PeriodStart:   ts.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     ts.PeriodEnd.Format("2006-01-02"),
		TotalHours:    ts.TotalHours.String(),
		OvertimeHours: ts.OvertimeHours.String(),
		Status:        ts.Status,
		ReviewNotes:   ts.ReviewNotes,
	}
	if ts.SubmittedAt != nil {
		resp.SubmittedAt = ts.SubmittedAt.UTC().Format(time.RFC3339)
	}
	if ts.ReviewerID != nil {
		resp.ReviewerID = ts.ReviewerID.String()
	}
	if ts.ReviewedAt != nil {
		resp.ReviewedAt = ts.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(sheets []Timesheet) []TimesheetResponse {
	res := make([]TimesheetResponse, len(sheets))
	for i, ts := range sheets {
		res[i] = mapToResponse(ts)
	}
	return res
}
