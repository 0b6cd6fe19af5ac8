package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-hrm/internal/contract"
	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/position"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/tenant"
	"go-hrm/internal/timesheet"
	"go-hrm/internal/timetracking"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	tenantRepo := tenant.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	holidayRepo := leave.NewHolidayRepository(gormDB)
	ledger := leave.NewLedger(gormDB)
	contractRepo := contract.NewRepository(gormDB)
	timeEntryRepo := timetracking.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	tenantService := tenant.NewService(db, tenantRepo)
	rbacService := rbac.NewService(enforcer, tenantService)
	departmentService := department.NewService(db, departmentRepo)
	positionService := position.NewService(db, positionRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, holidayRepo, ledger, tenantService, outboxRepo)
	holidayService := leave.NewHolidayService(holidayRepo)
	syncService := leave.NewSyncService(leave.NewNagerDateFeed(), holidayRepo, departmentRepo)
	contractService := contract.NewService(contractRepo)
	timetrackingService := timetracking.NewService(timeEntryRepo, tenantService)
	timesheetService := timesheet.NewService(timesheetRepo, tenantService, standardHoursFrom(tenantRepo))

	// --- Handlers ---
	tenantHandler := tenant.NewHandler(tenantService)
	departmentHandler := department.NewHandler(departmentService)
	positionHandler := position.NewHandler(positionService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService, holidayService, syncService)
	contractHandler := contract.NewHandler(contractService)
	timetrackingHandler := timetracking.NewHandler(timetrackingService)
	timesheetHandler := timesheet.NewHandler(timesheetService)

	// Health check di luar middleware chain.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(50), 100),
		middleware.AuthMiddleware(),
		middleware.ExtractUserID(),
		middleware.RateLimitByUser(rate.Limit(20), 40),
		middleware.TenantContext(tenant.NewResolver(tenantRepo)),
		middleware.ContextLogger(zap.L()),
		middleware.Idempotency(rdb),
	)
	{
		tenant.RegisterRoutes(api, tenantHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		position.RegisterRoutes(api, positionHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		contract.RegisterRoutes(api, contractHandler, rbacService)
		timetracking.RegisterRoutes(api, timetrackingHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService)
	}

	return nil
}

// standardHoursFrom membaca jam kerja standar dari tenant settings.
// Tenant tanpa settings memakai default 8 jam/hari.
func standardHoursFrom(repo tenant.Repository) timesheet.StandardHours {
	return func(ctx context.Context, tenantID string, days int) (decimal.Decimal, error) {
		settings, err := repo.FindSettings(ctx, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return decimal.NewFromInt(int64(days) * 8), nil
			}
			return decimal.Zero, err
		}
		return settings.WorkHoursPerDay.Mul(decimal.NewFromInt(int64(days))), nil
	}
}
