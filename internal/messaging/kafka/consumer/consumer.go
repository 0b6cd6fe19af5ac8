package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"go-hrm/internal/events"
	"go-hrm/internal/leave"
	"go-hrm/internal/tenant"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConsumeEmployeeLifecycle seeds default leave entitlements for every
// employee_created event, based on the tenant's settings.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	leaveService leave.Service,
	tenants tenant.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := seedLeaveBalances(ctx, leaveService, tenants, event, log); err != nil {
			log.Error("seed leave balances failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("tenant_id", event.TenantID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}
	}
}

func seedLeaveBalances(
	ctx context.Context,
	leaveService leave.Service,
	tenants tenant.Repository,
	event events.EmployeeCreatedEvent,
	log *zap.Logger,
) error {
	settings, err := tenants.FindSettings(ctx, event.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Tenant tanpa settings: tidak ada default yang bisa diberikan.
			return nil
		}
		return err
	}

	defaults := map[string]int{
		"ANNUAL": settings.DefaultAnnualLeaveDays,
		"SICK":   settings.DefaultSickLeaveDays,
	}

	types, err := leaveService.GetTypes(ctx, event.TenantID)
	if err != nil {
		return err
	}

	year := event.OccurredAt.UTC().Year()

	existing, err := leaveService.BalanceSummary(ctx, event.TenantID, event.EmployeeID, year)
	if err != nil {
		return err
	}
	seeded := make(map[string]bool, len(existing))
	for _, item := range existing {
		if item.Entitled != "0" {
			seeded[item.LeaveTypeID] = true
		}
	}

	for _, lt := range types {
		days, ok := defaults[lt.Code]
		if !ok || !lt.IsActive || days <= 0 {
			continue
		}
		// Event redelivery tidak boleh menimpa entitlement yang sudah diisi.
		if seeded[lt.ID] {
			continue
		}

		_, err := leaveService.SetEntitlement(ctx, event.TenantID, leave.SetEntitlementRequest{
			EmployeeID:  event.EmployeeID,
			LeaveTypeID: lt.ID,
			Year:        year,
			Entitled:    strconv.Itoa(days),
		})
		if err != nil {
			return err
		}

		log.Info("default leave entitlement seeded",
			zap.String("employee_id", event.EmployeeID),
			zap.String("leave_type", lt.Code),
			zap.Int("entitled_days", days),
		)
	}

	return nil
}
