package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoleSource answers "what role does this user hold in this tenant".
// Satisfied by tenant.Service.
type RoleSource interface {
	RoleFor(ctx context.Context, userID, tenantID string) (string, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CreateType(ctx context.Context, tenantID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetTypes(ctx context.Context, tenantID string) ([]LeaveTypeResponse, error)
	GetType(ctx context.Context, tenantID, id string) (LeaveTypeResponse, error)
	UpdateType(ctx context.Context, tenantID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	DeleteType(ctx context.Context, tenantID, id string) error

	CreateRequest(ctx context.Context, tenantID, userID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	MyRequests(ctx context.Context, tenantID, userID string) ([]LeaveRequestResponse, error)
	GetRequest(ctx context.Context, tenantID, id string) (LeaveRequestResponse, error)
	PendingApprovals(ctx context.Context, tenantID, userID string) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, tenantID, userID, requestID, notes string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, tenantID, userID, requestID, notes string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, tenantID, userID, requestID string) (LeaveRequestResponse, error)
	Calendar(ctx context.Context, tenantID, from, to string) ([]LeaveRequestResponse, error)

	BalanceSummary(ctx context.Context, tenantID, employeeID string, year int) ([]BalanceSummaryItem, error)
	MyBalances(ctx context.Context, tenantID, userID string, year int) ([]BalanceSummaryItem, error)
	SetEntitlement(ctx context.Context, tenantID string, req SetEntitlementRequest) (BalanceSummaryItem, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	holidays HolidayRepository
	ledger   Ledger
	roles    RoleSource
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	holidays HolidayRepository,
	ledger Ledger,
	roles RoleSource,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, holidays, ledger, roles, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	holidays HolidayRepository,
	ledger Ledger,
	roles RoleSource,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		holidays: holidays,
		ledger:   ledger,
		roles:    roles,
		outbox:   outboxRepo,
		logger:   l,
	}
}

// ---- leave types ----

func (s *service) CreateType(ctx context.Context, tenantID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt := &LeaveType{
		ID:                 uuid.New(),
		TenantID:           uuid.MustParse(tenantID), // selalu dari context, bukan dari client
		Code:               req.Code,
		Name:               req.Name,
		IsPaid:             boolOrDefault(req.IsPaid, true),
		RequiresApproval:   boolOrDefault(req.RequiresApproval, true),
		MaxConsecutiveDays: req.MaxConsecutiveDays,
		Color:              req.Color,
		IsActive:           true,
	}

	if err := s.repo.CreateType(ctx, lt); err != nil {
		s.logger.Error("create leave type failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave type success",
		zap.String("tenant_id", tenantID),
		zap.String("code", lt.Code),
	)
	return mapTypeToResponse(*lt), nil
}

func (s *service) GetTypes(ctx context.Context, tenantID string) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindTypesByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("get leave types failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		res[i] = mapTypeToResponse(lt)
	}
	return res, nil
}

func (s *service) GetType(ctx context.Context, tenantID, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapTypeError(err)
	}
	return mapTypeToResponse(*lt), nil
}

func (s *service) UpdateType(ctx context.Context, tenantID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapTypeError(err)
	}

	lt.Name = req.Name
	lt.MaxConsecutiveDays = req.MaxConsecutiveDays
	lt.Color = req.Color
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	if req.RequiresApproval != nil {
		lt.RequiresApproval = *req.RequiresApproval
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateType(ctx, lt); err != nil {
		s.logger.Error("update leave type failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapTypeToResponse(*lt), nil
}

// DeleteType refuses while any request references the type (protect).
func (s *service) DeleteType(ctx context.Context, tenantID, id string) error {
	if _, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapTypeError(err)
	}

	refs, err := s.repo.CountRequestsByType(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("count leave type references failed", zap.Error(err))
		return err
	}
	if refs > 0 {
		return leaveerrors.ErrLeaveTypeInUse
	}

	if err := s.repo.DeleteType(ctx, tenantID, id); err != nil {
		s.logger.Error("delete leave type failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

// ---- requests ----

func (s *service) CreateRequest(ctx context.Context, tenantID, userID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if req.IsHalfDay {
		if !start.Equal(end) {
			return LeaveRequestResponse{}, leaveerrors.ErrHalfDayMultipleDates
		}
		if req.HalfDayPeriod != HalfDayMorning && req.HalfDayPeriod != HalfDayAfternoon {
			return LeaveRequestResponse{}, leaveerrors.ErrInvalidHalfDayPeriod
		}
	}

	emp, err := s.repo.FindEmployeeRefByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrNoEmployeeProfile
		}
		s.logger.Error("create leave request employee lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lt, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, mapTypeError(err)
	}

	total, days, excluded, err := s.computeDays(ctx, tenantID, emp.DepartmentCountry, start, end, req.IsHalfDay)
	if err != nil {
		s.logger.Error("create leave request day counting failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if lt.MaxConsecutiveDays > 0 && total.GreaterThan(decimal.NewFromInt(int64(lt.MaxConsecutiveDays))) {
		return LeaveRequestResponse{}, leaveerrors.ErrMaxConsecutiveDaysExceeded
	}

	lr := &LeaveRequest{
		ID:                uuid.New(),
		TenantID:          uuid.MustParse(tenantID),
		EmployeeID:        uuid.MustParse(emp.ID),
		LeaveTypeID:       lt.ID,
		StartDate:         start,
		EndDate:           end,
		IsHalfDay:         req.IsHalfDay,
		HalfDayPeriod:     req.HalfDayPeriod,
		TotalCalendarDays: total,
		DaysRequested:     days,
		Status:            StatusPending,
		Reason:            req.Reason,
	}

	if err := s.repo.CreateRequest(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("days_requested", days.String()),
	)

	resp := mapRequestToResponse(*lr)
	resp.HolidaysExcluded = excluded
	return resp, nil
}

func (s *service) MyRequests(ctx context.Context, tenantID, userID string) ([]LeaveRequestResponse, error) {
	emp, err := s.repo.FindEmployeeRefByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrNoEmployeeProfile
		}
		return nil, err
	}

	reqs, err := s.repo.FindRequestsByEmployee(ctx, tenantID, emp.ID)
	if err != nil {
		s.logger.Error("list my leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapRequestsToResponse(reqs), nil
}

func (s *service) GetRequest(ctx context.Context, tenantID, id string) (LeaveRequestResponse, error) {
	lr, err := s.repo.FindRequestByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRequestError(err)
	}
	return mapRequestToResponse(*lr), nil
}

// PendingApprovals is refused outright for roles without approval
// authority, not silently filtered.
func (s *service) PendingApprovals(ctx context.Context, tenantID, userID string) ([]LeaveRequestResponse, error) {
	if err := s.requireApprovalRole(ctx, userID, tenantID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.FindPendingByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("list pending approvals failed", zap.Error(err))
		return nil, err
	}
	return mapRequestsToResponse(reqs), nil
}

func (s *service) Approve(ctx context.Context, tenantID, userID, requestID, notes string) (LeaveRequestResponse, error) {
	return s.review(ctx, tenantID, userID, requestID, notes, StatusApproved)
}

func (s *service) Reject(ctx context.Context, tenantID, userID, requestID, notes string) (LeaveRequestResponse, error) {
	return s.review(ctx, tenantID, userID, requestID, notes, StatusRejected)
}

// review runs the approve/reject transition. The request row is locked
// for the duration of the transaction, so a racing reviewer observes
// the committed status and fails the transition check.
func (s *service) review(ctx context.Context, tenantID, userID, requestID, notes, decision string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if err := s.requireApprovalRole(ctx, userID, tenantID); err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindRequestByIDAndTenantForUpdate(ctx, tenantID, requestID)
	if err != nil {
		return LeaveRequestResponse{}, mapRequestError(err)
	}

	if !lr.CanTransitionTo(decision) {
		return LeaveRequestResponse{}, leaveerrors.InvalidTransition(lr.Status)
	}

	if decision == StatusApproved {
		// Recompute with the holidays stored right now, then charge the
		// balance keyed by the request's start year.
		emp, err := qtx.FindEmployeeRefByID(ctx, tenantID, lr.EmployeeID.String())
		if err != nil {
			s.logger.Error("approve employee lookup failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}

		total, days, _, err := s.computeDaysTx(ctx, tx, tenantID, emp.DepartmentCountry, lr.StartDate, lr.EndDate, lr.IsHalfDay)
		if err != nil {
			s.logger.Error("approve day counting failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		lr.TotalCalendarDays = total
		lr.DaysRequested = days

		ltx := s.ledger.WithTx(tx)
		balance, err := ltx.GetOrCreate(ctx, tenantID, lr.EmployeeID.String(), lr.LeaveTypeID.String(), lr.StartDate.Year())
		if err != nil {
			s.logger.Error("approve get balance failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		if err := ltx.AdjustUsed(ctx, balance.ID.String(), lr.DaysRequested); err != nil {
			s.logger.Error("approve adjust balance failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
	}

	reviewer := uuid.MustParse(userID)
	now := time.Now().UTC()
	lr.Status = decision
	lr.ReviewerID = &reviewer
	lr.ReviewedAt = &now
	lr.ReviewNotes = notes

	if err := qtx.UpdateRequest(ctx, lr); err != nil {
		s.logger.Error("review persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.queueDecisionEvent(ctx, tx, rid, "leave_"+decision, *lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request reviewed",
		zap.String("request_id", rid),
		zap.String("leave_request_id", requestID),
		zap.String("decision", decision),
		zap.String("reviewer_id", userID),
	)
	return mapRequestToResponse(*lr), nil
}

// Cancel is self-service only: the acting user must be the requesting
// employee. An approved request refunds the ledger before the status
// flips.
func (s *service) Cancel(ctx context.Context, tenantID, userID, requestID string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindRequestByIDAndTenantForUpdate(ctx, tenantID, requestID)
	if err != nil {
		return LeaveRequestResponse{}, mapRequestError(err)
	}

	emp, err := qtx.FindEmployeeRefByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrNoEmployeeProfile
		}
		return LeaveRequestResponse{}, err
	}
	if emp.ID != lr.EmployeeID.String() {
		return LeaveRequestResponse{}, leaveerrors.ErrNotRequestOwner
	}

	if !lr.CanTransitionTo(StatusCancelled) {
		return LeaveRequestResponse{}, leaveerrors.InvalidTransition(lr.Status)
	}

	if lr.Status == StatusApproved {
		// Refund with the same amount and year key used at approval.
		ltx := s.ledger.WithTx(tx)
		balance, err := ltx.GetOrCreate(ctx, tenantID, lr.EmployeeID.String(), lr.LeaveTypeID.String(), lr.StartDate.Year())
		if err != nil {
			s.logger.Error("cancel get balance failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		if err := ltx.AdjustUsed(ctx, balance.ID.String(), lr.DaysRequested.Neg()); err != nil {
			s.logger.Error("cancel adjust balance failed", zap.Error(err))
			return LeaveRequestResponse{}, err
		}
	}

	lr.Status = StatusCancelled

	if err := qtx.UpdateRequest(ctx, lr); err != nil {
		s.logger.Error("cancel persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.queueDecisionEvent(ctx, tx, rid, "leave_cancelled", *lr); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request cancelled",
		zap.String("request_id", rid),
		zap.String("leave_request_id", requestID),
	)
	return mapRequestToResponse(*lr), nil
}

func (s *service) Calendar(ctx context.Context, tenantID, from, to string) ([]LeaveRequestResponse, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	reqs, err := s.repo.FindRequestsInRange(ctx, tenantID, start, end)
	if err != nil {
		s.logger.Error("leave calendar failed", zap.Error(err))
		return nil, err
	}
	return mapRequestsToResponse(reqs), nil
}

// ---- balances ----

func (s *service) BalanceSummary(ctx context.Context, tenantID, employeeID string, year int) ([]BalanceSummaryItem, error) {
	if _, err := s.repo.FindEmployeeRefByID(ctx, tenantID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrNoEmployeeProfile
		}
		return nil, err
	}
	return s.buildSummary(ctx, tenantID, employeeID, year)
}

func (s *service) MyBalances(ctx context.Context, tenantID, userID string, year int) ([]BalanceSummaryItem, error) {
	emp, err := s.repo.FindEmployeeRefByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrNoEmployeeProfile
		}
		return nil, err
	}
	return s.buildSummary(ctx, tenantID, emp.ID, year)
}

func (s *service) buildSummary(ctx context.Context, tenantID, employeeID string, year int) ([]BalanceSummaryItem, error) {
	types, err := s.repo.FindTypesByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	balances, err := s.ledger.FindByEmployeeAndYear(ctx, tenantID, employeeID, year)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]LeaveBalance, len(balances))
	for _, b := range balances {
		byType[b.LeaveTypeID.String()] = b
	}

	items := make([]BalanceSummaryItem, 0, len(types))
	for _, lt := range types {
		item := BalanceSummaryItem{
			LeaveTypeID:   lt.ID.String(),
			LeaveTypeCode: lt.Code,
			LeaveTypeName: lt.Name,
			Year:          year,
			Entitled:      decimal.Zero.String(),
			Used:          decimal.Zero.String(),
			CarriedOver:   decimal.Zero.String(),
			Remaining:     decimal.Zero.String(),
		}
		if b, ok := byType[lt.ID.String()]; ok {
			item.Entitled = b.EntitledDays.String()
			item.Used = b.UsedDays.String()
			item.CarriedOver = b.CarriedOver.String()
			item.Remaining = b.Remaining().String()
		}

		pending, err := s.repo.SumPendingDays(ctx, tenantID, employeeID, lt.ID.String(), year)
		if err != nil {
			return nil, err
		}
		item.Pending = pending.String()

		items = append(items, item)
	}
	return items, nil
}

func (s *service) SetEntitlement(ctx context.Context, tenantID string, req SetEntitlementRequest) (BalanceSummaryItem, error) {
	entitled, err := decimal.NewFromString(req.Entitled)
	if err != nil {
		return BalanceSummaryItem{}, apperrInvalidDecimal("entitled")
	}
	carried := decimal.Zero
	if req.CarriedOver != "" {
		carried, err = decimal.NewFromString(req.CarriedOver)
		if err != nil {
			return BalanceSummaryItem{}, apperrInvalidDecimal("carried_over")
		}
	}

	lt, err := s.repo.FindTypeByIDAndTenant(ctx, tenantID, req.LeaveTypeID)
	if err != nil {
		return BalanceSummaryItem{}, mapTypeError(err)
	}
	if _, err := s.repo.FindEmployeeRefByID(ctx, tenantID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceSummaryItem{}, leaveerrors.ErrNoEmployeeProfile
		}
		return BalanceSummaryItem{}, err
	}

	balance, err := s.ledger.SetEntitlement(ctx, tenantID, req.EmployeeID, req.LeaveTypeID, req.Year, entitled, carried)
	if err != nil {
		s.logger.Error("set entitlement failed", zap.Error(err))
		return BalanceSummaryItem{}, err
	}

	pending, err := s.repo.SumPendingDays(ctx, tenantID, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return BalanceSummaryItem{}, err
	}

	return BalanceSummaryItem{
		LeaveTypeID:   lt.ID.String(),
		LeaveTypeCode: lt.Code,
		LeaveTypeName: lt.Name,
		Year:          req.Year,
		Entitled:      balance.EntitledDays.String(),
		Used:          balance.UsedDays.String(),
		CarriedOver:   balance.CarriedOver.String(),
		Remaining:     balance.Remaining().String(),
		Pending:       pending.String(),
	}, nil
}

// ---- internals ----

func (s *service) requireApprovalRole(ctx context.Context, userID, tenantID string) error {
	role, err := s.roles.RoleFor(ctx, userID, tenantID)
	if err != nil {
		return leaveerrors.ErrApprovalRoleRequired
	}
	if !tenant.CanApprove(role) {
		return leaveerrors.ErrApprovalRoleRequired
	}
	return nil
}

func (s *service) computeDays(ctx context.Context, tenantID, departmentCountry string, start, end time.Time, isHalfDay bool) (decimal.Decimal, decimal.Decimal, []string, error) {
	holidays, err := s.holidays.FindMatching(ctx, tenantID, start, end, departmentCountry)
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, err
	}
	total, days, excluded := countDays(start, end, isHalfDay, holidays)
	return total, days, excluded, nil
}

func (s *service) computeDaysTx(ctx context.Context, tx *sql.Tx, tenantID, departmentCountry string, start, end time.Time, isHalfDay bool) (decimal.Decimal, decimal.Decimal, []string, error) {
	holidays, err := s.holidays.WithTx(tx).FindMatching(ctx, tenantID, start, end, departmentCountry)
	if err != nil {
		return decimal.Zero, decimal.Zero, nil, err
	}
	total, days, excluded := countDays(start, end, isHalfDay, holidays)
	return total, days, excluded, nil
}

// countDays implements the day-counting rules. Half-day spans exactly
// one date: a holiday on that date yields 0, otherwise 0.5. Multi-day:
// max(0, inclusive span - matching holiday dates).
func countDays(start, end time.Time, isHalfDay bool, holidays []Holiday) (total, days decimal.Decimal, excluded []string) {
	seen := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		key := h.Date.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		excluded = append(excluded, key)
	}

	if isHalfDay {
		total = decimal.NewFromFloat(0.5)
		if _, onHoliday := seen[start.Format("2006-01-02")]; onHoliday {
			return total, decimal.Zero, excluded
		}
		return total, total, excluded
	}

	span := int64(end.Sub(start).Hours()/24) + 1
	total = decimal.NewFromInt(span)
	days = total.Sub(decimal.NewFromInt(int64(len(seen))))
	if days.IsNegative() {
		days = decimal.Zero
	}
	return total, days, excluded
}

func (s *service) queueDecisionEvent(ctx context.Context, tx *sql.Tx, rid, eventType string, lr LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveDecidedEvent{
		EventType:     eventType,
		LeaveID:       lr.ID.String(),
		TenantID:      lr.TenantID.String(),
		EmployeeID:    lr.EmployeeID.String(),
		LeaveTypeID:   lr.LeaveTypeID.String(),
		Status:        lr.Status,
		DaysRequested: lr.DaysRequested.String(),
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		TenantID:      lr.TenantID.String(),
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_request_id", lr.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func mapTypeToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                 lt.ID.String(),
		Code:               lt.Code,
		Name:               lt.Name,
		IsPaid:             lt.IsPaid,
		RequiresApproval:   lt.RequiresApproval,
		MaxConsecutiveDays: lt.MaxConsecutiveDays,
		Color:              lt.Color,
		IsActive:           lt.IsActive,
	}
}

func mapRequestToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                lr.ID.String(),
		EmployeeID:        lr.EmployeeID.String(),
		LeaveTypeID:       lr.LeaveTypeID.String(),
		StartDate:         lr.StartDate.Format("2006-01-02"),
		EndDate:           lr.EndDate.Format("2006-01-02"),
		IsHalfDay:         lr.IsHalfDay,
		HalfDayPeriod:     lr.HalfDayPeriod,
		TotalCalendarDays: lr.TotalCalendarDays.String(),
		DaysRequested:     lr.DaysRequested.String(),
		Status:            lr.Status,
		Reason:            lr.Reason,
		ReviewNotes:       lr.ReviewNotes,
		CreatedAt:         lr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lr.ReviewerID != nil {
		resp.ReviewerID = lr.ReviewerID.String()
	}
	if lr.ReviewedAt != nil {
		resp.ReviewedAt = lr.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapRequestsToResponse(reqs []LeaveRequest) []LeaveRequestResponse {
	res := make([]LeaveRequestResponse, len(reqs))
	for i, r := range reqs {
		res[i] = mapRequestToResponse(r)
	}
	return res
}

func mapTypeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveTypeNotFound
	}
	return err
}

func mapRequestError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveRequestNotFound
	}
	return err
}
