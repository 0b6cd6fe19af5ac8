package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(tenantID string) string {
	return EmployeeOptionsKeyPrefix + tenantID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, tenantID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (EmployeeResponse, error)
	GetSelf(ctx context.Context, tenantID, userID string) (EmployeeResponse, error)
	Update(ctx context.Context, tenantID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	tenantID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid), // Propagasi ke logs
		zap.String("tenant_id", tenantID),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.DepartmentID != "" {
		ok, err := qtx.DepartmentExists(ctx, tenantID, req.DepartmentID)
		if err != nil {
			s.logger.Error("create employee check department failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
	}
	if req.PositionID != "" {
		ok, err := qtx.PositionExists(ctx, tenantID, req.PositionID)
		if err != nil {
			s.logger.Error("create employee check position failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
		}
	}

	if req.EmployeeCode == "" {
		nextVal, err := s.counter.GetNextValue(ctx, tenantID, "employee_code")
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:                    uuid.New(),
		TenantID:              uuid.MustParse(tenantID), // selalu dari context, bukan dari client
		UserID:                uuidPtr(req.UserID),
		EmployeeCode:          req.EmployeeCode,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		DepartmentID:          uuidPtr(req.DepartmentID),
		PositionID:            uuidPtr(req.PositionID),
		ManagerID:             uuidPtr(req.ManagerID),
		HireDate:              hireDate,
		Status:                StatusActive,
		DateOfBirth:           datePtr(req.DateOfBirth),
		Address:               req.Address,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	event := events.EmployeeCreatedEvent{
		EventType:    "employee_created",
		RequestID:    rid, // Propagasi ke async events
		EmployeeID:   empl.ID.String(),
		TenantID:     tenantID,
		EmployeeCode: empl.EmployeeCode,
		OccurredAt:   time.Now().UTC(),
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			TenantID:      tenantID,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, tenantID)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	tenantID string,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("tenant_id", tenantID))
	empls, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, tenantID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(tenantID)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight untuk handle traffic tinggi saat Admin buka form
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByTenant(ctx, tenantID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		// 3. Simpan ke Redis (TTL 1 jam cukup karena data master)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	tenantID, id string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("tenant_id", tenantID),
		zap.String("employee_id", id),
	)
	empl, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetSelf(
	ctx context.Context,
	tenantID, userID string,
) (EmployeeResponse, error) {
	empl, err := s.repo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrNoEmployeeProfile
		}
		s.logger.Error("get self employee failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	tenantID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("tenant_id", tenantID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if req.DepartmentID != "" {
		ok, err := qtx.DepartmentExists(ctx, tenantID, req.DepartmentID)
		if err != nil {
			s.logger.Error("update employee check department failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
	}
	if req.PositionID != "" {
		ok, err := qtx.PositionExists(ctx, tenantID, req.PositionID)
		if err != nil {
			s.logger.Error("update employee check position failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if !ok {
			return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
		}
	}

	empl, err := qtx.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FirstName = req.FirstName
	empl.LastName = req.LastName
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.DepartmentID = uuidPtr(req.DepartmentID)
	empl.PositionID = uuidPtr(req.PositionID)
	empl.ManagerID = uuidPtr(req.ManagerID)
	empl.DateOfBirth = datePtr(req.DateOfBirth)
	empl.Address = req.Address
	empl.EmergencyContactName = req.EmergencyContactName
	empl.EmergencyContactPhone = req.EmergencyContactPhone

	if req.Status != "" {
		if !validStatus(req.Status) {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeStatus
		}
		empl.Status = req.Status
	}
	empl.TerminationDate = datePtr(req.TerminationDate)
	if empl.Status == StatusTerminated && empl.TerminationDate == nil {
		now := time.Now().UTC().Truncate(24 * time.Hour)
		empl.TerminationDate = &now
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, tenantID)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(
	ctx context.Context,
	tenantID, id string,
) error {
	s.logger.Debug("delete employee requested",
		zap.String("tenant_id", tenantID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx, tenantID)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, tenantID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(tenantID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func validStatus(status string) bool {
	switch status {
	case StatusActive, StatusOnLeave, StatusTerminated, StatusSuspended:
		return true
	}
	return false
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           empl.ID.String(),
		TenantID:     empl.TenantID.String(),
		EmployeeCode: empl.EmployeeCode,
		FirstName:    empl.FirstName,
		LastName:     empl.LastName,
		FullName:     empl.FullName(),
		Email:        empl.Email,
		Phone:        empl.Phone,
		UserID:       uuidToString(empl.UserID),
		DepartmentID: uuidToString(empl.DepartmentID),
		PositionID:   uuidToString(empl.PositionID),
		ManagerID:    uuidToString(empl.ManagerID),
		HireDate:     empl.HireDate.Format("2006-01-02"),
		Status:       empl.Status,
		Address:      empl.Address,
	}
	if empl.TerminationDate != nil {
		resp.TerminationDate = empl.TerminationDate.Format("2006-01-02")
	}
	if empl.DateOfBirth != nil {
		resp.DateOfBirth = empl.DateOfBirth.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
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
