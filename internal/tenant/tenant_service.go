package tenant

import (
	"context"
	"database/sql"
	"errors"
	"time"

	tenanterrors "go-hrm/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_service.go -destination=mock/tenant_service_mock.go -package=mock
type Service interface {
	GetCurrent(ctx context.Context, tenantID string) (TenantResponse, error)
	UpdateSettings(ctx context.Context, tenantID string, req UpdateSettingsRequest) (SettingsResponse, error)
	ListMyMemberships(ctx context.Context, userID string) ([]MembershipResponse, error)
	SetDefaultMembership(ctx context.Context, userID, membershipID string) (MembershipResponse, error)
	RoleFor(ctx context.Context, userID, tenantID string) (string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("tenant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetCurrent(ctx context.Context, tenantID string) (TenantResponse, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return TenantResponse{}, tenanterrors.ErrInvalidTenantID
	}

	t, err := s.repo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantResponse{}, err
	}
	return mapTenantToResponse(*t), nil
}

func (s *service) UpdateSettings(ctx context.Context, tenantID string, req UpdateSettingsRequest) (SettingsResponse, error) {
	if _, err := uuid.Parse(tenantID); err != nil {
		return SettingsResponse{}, tenanterrors.ErrInvalidTenantID
	}
	if req.TimesheetPeriod != nil {
		switch *req.TimesheetPeriod {
		case "weekly", "biweekly", "monthly":
		default:
			return SettingsResponse{}, tenanterrors.ErrInvalidTimesheetPeriod
		}
	}

	settings, err := s.repo.FindSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SettingsResponse{}, tenanterrors.ErrSettingsNotFound
		}
		return SettingsResponse{}, err
	}

	applySettingsUpdate(settings, req)

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		s.logger.Error("update settings persist failed",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		return SettingsResponse{}, err
	}
	s.logger.Info("tenant settings updated", zap.String("tenant_id", tenantID))

	return mapSettingsToResponse(*settings), nil
}

func (s *service) ListMyMemberships(ctx context.Context, userID string) ([]MembershipResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, tenanterrors.ErrInvalidUserID
	}

	ms, err := s.repo.FindMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]MembershipResponse, len(ms))
	for i, m := range ms {
		resp[i] = mapMembershipToResponse(m)
	}
	return resp, nil
}

// SetDefaultMembership flags one membership as the user's default and
// clears every other default flag for that user inside the same
// transaction, so at most one default ever exists.
func (s *service) SetDefaultMembership(ctx context.Context, userID, membershipID string) (MembershipResponse, error) {
	s.logger.Debug("set default membership requested",
		zap.String("user_id", userID),
		zap.String("membership_id", membershipID),
	)

	if _, err := uuid.Parse(userID); err != nil {
		return MembershipResponse{}, tenanterrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(membershipID); err != nil {
		return MembershipResponse{}, tenanterrors.ErrInvalidMembershipID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set default membership begin tx failed", zap.Error(err))
		return MembershipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ms, err := qtx.FindMembershipsByUser(ctx, userID)
	if err != nil {
		return MembershipResponse{}, err
	}

	var target *TenantMembership
	for i := range ms {
		if ms[i].ID.String() == membershipID {
			target = &ms[i]
			break
		}
	}
	if target == nil {
		return MembershipResponse{}, tenanterrors.ErrMembershipNotFound
	}

	if err := qtx.ClearDefaultFlags(ctx, userID, membershipID); err != nil {
		s.logger.Error("clear default flags failed", zap.Error(err))
		return MembershipResponse{}, err
	}

	target.IsDefault = true
	target.UpdatedAt = time.Now().UTC()
	if err := qtx.UpdateMembership(ctx, target); err != nil {
		s.logger.Error("set default membership persist failed", zap.Error(err))
		return MembershipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set default membership commit failed", zap.Error(err))
		return MembershipResponse{}, err
	}
	s.logger.Info("default membership updated",
		zap.String("user_id", userID),
		zap.String("membership_id", membershipID),
	)

	return mapMembershipToResponse(*target), nil
}

func (s *service) RoleFor(ctx context.Context, userID, tenantID string) (string, error) {
	m, err := s.repo.FindMembership(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", tenanterrors.ErrMembershipNotFound
		}
		return "", err
	}
	return m.Role, nil
}

func applySettingsUpdate(s *TenantSettings, req UpdateSettingsRequest) {
	if req.WorkHoursPerDay != nil {
		s.WorkHoursPerDay = *req.WorkHoursPerDay
	}
	if req.WorkDaysPerWeek != nil {
		s.WorkDaysPerWeek = *req.WorkDaysPerWeek
	}
	if req.OvertimeMultiplier != nil {
		s.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.DefaultAnnualLeaveDays != nil {
		s.DefaultAnnualLeaveDays = *req.DefaultAnnualLeaveDays
	}
	if req.DefaultSickLeaveDays != nil {
		s.DefaultSickLeaveDays = *req.DefaultSickLeaveDays
	}
	if req.LeaveApprovalRequired != nil {
		s.LeaveApprovalRequired = *req.LeaveApprovalRequired
	}
	if req.TimesheetPeriod != nil {
		s.TimesheetPeriod = *req.TimesheetPeriod
	}
	if req.TimesheetApprovalRequired != nil {
		s.TimesheetApprovalRequired = *req.TimesheetApprovalRequired
	}
	if req.Timezone != nil {
		s.Timezone = *req.Timezone
	}
	if req.DateFormat != nil {
		s.DateFormat = *req.DateFormat
	}
	if req.Currency != nil {
		s.Currency = *req.Currency
	}
}
