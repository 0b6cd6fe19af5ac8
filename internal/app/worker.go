package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hrm/internal/department"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/messaging/kafka/producer"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/tenant"

	"go.uber.org/zap"
)

func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	tenantRepo := tenant.NewRepository(gormDB)
	holidayRepo := leave.NewHolidayRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	syncService := leave.NewSyncService(leave.NewNagerDateFeed(), holidayRepo, departmentRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runHolidaySyncLoop(ctx, tenantRepo, syncService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runHolidaySyncLoop refreshes public holidays untuk semua tenant aktif.
// Sekali saat start, lalu setiap 24 jam.
func runHolidaySyncLoop(
	ctx context.Context,
	tenants tenant.Repository,
	sync leave.SyncService,
	logger *zap.Logger,
) {
	log := logger.Named("holiday.sync.loop")

	interval := 24 * time.Hour
	if raw := os.Getenv("HOLIDAY_SYNC_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	syncAllTenants(ctx, tenants, sync, log)

	for {
		select {
		case <-ctx.Done():
			log.Info("holiday sync loop stopped")
			return
		case <-ticker.C:
			syncAllTenants(ctx, tenants, sync, log)
		}
	}
}

func syncAllTenants(
	ctx context.Context,
	tenants tenant.Repository,
	sync leave.SyncService,
	log *zap.Logger,
) {
	ids, err := tenants.FindActiveIDs(ctx)
	if err != nil {
		log.Error("list active tenants failed", zap.Error(err))
		return
	}

	for _, tenantID := range ids {
		result, err := sync.SyncAll(ctx, tenantID)
		if err != nil {
			log.Warn("holiday sync failed for tenant",
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
			continue
		}
		if result.Created > 0 || result.Updated > 0 {
			log.Info("holiday sync completed",
				zap.String("tenant_id", tenantID),
				zap.Int("created", result.Created),
				zap.Int("updated", result.Updated),
			)
		}
	}
}
