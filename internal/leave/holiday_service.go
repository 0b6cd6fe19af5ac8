package leave

import (
	"context"
	"errors"
	"time"

	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type HolidayService interface {
	Create(ctx context.Context, tenantID string, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context, tenantID string) ([]HolidayResponse, error)
	GetByID(ctx context.Context, tenantID, id string) (HolidayResponse, error)
	Upcoming(ctx context.Context, tenantID string, limit int) ([]HolidayResponse, error)
	Update(ctx context.Context, tenantID, id string, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type holidayService struct {
	repo   HolidayRepository
	logger *zap.Logger
}

func NewHolidayService(repo HolidayRepository, logger ...*zap.Logger) HolidayService {
	l := zap.L().Named("leave.holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.holiday.service")
	}
	return &holidayService{repo: repo, logger: l}
}

func (s *holidayService) Create(ctx context.Context, tenantID string, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, leaveerrors.ErrInvalidDateRange
	}

	h := &Holiday{
		ID:        uuid.New(),
		TenantID:  uuid.MustParse(tenantID),
		Country:   req.Country,
		Date:      date,
		Name:      req.Name,
		LocalName: req.LocalName,
		Source:    HolidaySourceManual,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday failed", zap.Error(err))
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create holiday success",
		zap.String("tenant_id", tenantID),
		zap.String("date", req.Date),
		zap.String("name", req.Name),
	)
	return mapHolidayToResponse(*h), nil
}

func (s *holidayService) GetAll(ctx context.Context, tenantID string) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("get holidays failed", zap.Error(err))
		return nil, err
	}
	return mapHolidaysToResponse(holidays), nil
}

func (s *holidayService) GetByID(ctx context.Context, tenantID, id string) (HolidayResponse, error) {
	h, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return HolidayResponse{}, mapHolidayError(err)
	}
	return mapHolidayToResponse(*h), nil
}

func (s *holidayService) Upcoming(ctx context.Context, tenantID string, limit int) ([]HolidayResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	holidays, err := s.repo.FindUpcoming(ctx, tenantID, time.Now().UTC(), limit)
	if err != nil {
		s.logger.Error("get upcoming holidays failed", zap.Error(err))
		return nil, err
	}
	return mapHolidaysToResponse(holidays), nil
}

func (s *holidayService) Update(ctx context.Context, tenantID, id string, req CreateHolidayRequest) (HolidayResponse, error) {
	h, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		return HolidayResponse{}, mapHolidayError(err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, leaveerrors.ErrInvalidDateRange
	}

	h.Date = date
	h.Name = req.Name
	h.LocalName = req.LocalName
	h.Country = req.Country

	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("update holiday failed", zap.Error(err))
		return HolidayResponse{}, mapRepositoryError(err)
	}
	return mapHolidayToResponse(*h), nil
}

func (s *holidayService) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := s.repo.FindByIDAndTenant(ctx, tenantID, id); err != nil {
		return mapHolidayError(err)
	}
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		s.logger.Error("delete holiday failed", zap.Error(err))
		return err
	}
	return nil
}

func mapHolidayError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrHolidayNotFound
	}
	return err
}

func mapHolidayToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID.String(),
		Date:      h.Date.Format("2006-01-02"),
		Name:      h.Name,
		LocalName: h.LocalName,
		Country:   h.Country,
		Source:    h.Source,
	}
}

func mapHolidaysToResponse(holidays []Holiday) []HolidayResponse {
	res := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		res[i] = mapHolidayToResponse(h)
	}
	return res
}
