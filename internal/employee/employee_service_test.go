package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn              func(tx *sql.Tx) employee.Repository
	createFn              func(ctx context.Context, empl *employee.Employee) error
	findAllByTenantFn     func(ctx context.Context, tenantID string) ([]employee.Employee, error)
	findByIDAndTenantFn   func(ctx context.Context, tenantID, id string) (*employee.Employee, error)
	findByUserFn          func(ctx context.Context, tenantID, userID string) (*employee.Employee, error)
	findOptionsByTenantFn func(ctx context.Context, tenantID string) ([]employee.Employee, error)
	departmentExistsFn    func(ctx context.Context, tenantID, departmentID string) (bool, error)
	positionExistsFn      func(ctx context.Context, tenantID, positionID string) (bool, error)
	updateFn              func(ctx context.Context, empl *employee.Employee) error
	deleteFn              func(ctx context.Context, tenantID, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	if f.findAllByTenantFn != nil {
		return f.findAllByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByUser(ctx context.Context, tenantID, userID string) (*employee.Employee, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, tenantID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindOptionsByTenant(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	if f.findOptionsByTenantFn != nil {
		return f.findOptionsByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) DepartmentExists(ctx context.Context, tenantID, departmentID string) (bool, error) {
	if f.departmentExistsFn != nil {
		return f.departmentExistsFn(ctx, tenantID, departmentID)
	}
	return true, nil
}

func (f *fakeEmployeeRepository) PositionExists(ctx context.Context, tenantID, positionID string) (bool, error) {
	if f.positionExistsFn != nil {
		return f.positionExistsFn(ctx, tenantID, positionID)
	}
	return true, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, tenantID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, tenantID, id)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
	err  error
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, tenantID, counterType string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
	counter *fakeCounterRepository
	outbox  *fakeOutboxRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	counterRepo := &fakeCounterRepository{}
	outbox := &fakeOutboxRepository{}
	svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outbox, nil)

	return &employeeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		counter: counterRepo,
		outbox:  outbox,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()

	t.Run("generates a code and queues the lifecycle event", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *employee.Employee
		deps.repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			created = empl
			return nil
		}

		res, err := deps.service.Create(ctx, tenantID, employee.CreateEmployeeRequest{
			FirstName: "Maya",
			LastName:  "Kusuma",
			Email:     "maya@example.com",
			HireDate:  "2026-02-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000001", res.EmployeeCode)
		assert.Equal(t, employee.StatusActive, res.Status)
		assert.Equal(t, uuid.MustParse(tenantID), created.TenantID)

		assert.Len(t, deps.outbox.events, 1)
		queued := deps.outbox.events[0]
		assert.Equal(t, "employee_created", queued.EventType)
		assert.Equal(t, events.EmployeeCreatedTopic, queued.Topic)
		assert.Equal(t, tenantID, queued.TenantID)
		assert.Equal(t, created.ID.String(), queued.AggregateID)

		var payload events.EmployeeCreatedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &payload))
		assert.Equal(t, "EMP-000001", payload.EmployeeCode)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit code is kept as-is", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		res, err := deps.service.Create(ctx, tenantID, employee.CreateEmployeeRequest{
			EmployeeCode: "EXT-42",
			FirstName:    "Jon",
			LastName:     "Pertama",
			Email:        "jon@example.com",
			HireDate:     "2026-02-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EXT-42", res.EmployeeCode)
		assert.EqualValues(t, 0, deps.counter.next)
	})

	t.Run("invalid hire date rejected before the transaction", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, tenantID, employee.CreateEmployeeRequest{
			FirstName: "Maya",
			LastName:  "Kusuma",
			Email:     "maya@example.com",
			HireDate:  "01-02-2026",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown department aborts the transaction", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.departmentExistsFn = func(ctx context.Context, tid, did string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, tenantID, employee.CreateEmployeeRequest{
			FirstName:    "Maya",
			LastName:     "Kusuma",
			Email:        "maya@example.com",
			HireDate:     "2026-02-01",
			DepartmentID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
		assert.Empty(t, deps.outbox.events)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetSelf(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()
	userID := uuid.New().String()

	t.Run("maps the linked employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		uid := uuid.MustParse(userID)
		deps.repo.findByUserFn = func(ctx context.Context, tid, u string) (*employee.Employee, error) {
			assert.Equal(t, userID, u)
			return &employee.Employee{
				ID:        uuid.New(),
				TenantID:  uuid.MustParse(tenantID),
				UserID:    &uid,
				FirstName: "Maya",
				LastName:  "Kusuma",
				Status:    employee.StatusActive,
			}, nil
		}

		res, err := deps.service.GetSelf(ctx, tenantID, userID)
		assert.NoError(t, err)
		assert.Equal(t, "Maya Kusuma", res.FullName)
		assert.Equal(t, userID, res.UserID)
	})

	t.Run("user without profile", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetSelf(ctx, tenantID, userID)
		assert.ErrorIs(t, err, employeeerrors.ErrNoEmployeeProfile)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()

	t.Run("terminating without a date fills one in", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		existing := &employee.Employee{
			ID:       uuid.New(),
			TenantID: uuid.MustParse(tenantID),
			Status:   employee.StatusActive,
		}
		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*employee.Employee, error) {
			return existing, nil
		}

		var saved *employee.Employee
		deps.repo.updateFn = func(ctx context.Context, empl *employee.Employee) error {
			saved = empl
			return nil
		}

		res, err := deps.service.Update(ctx, tenantID, existing.ID.String(), employee.UpdateEmployeeRequest{
			FirstName: "Maya",
			LastName:  "Kusuma",
			Email:     "maya@example.com",
			Status:    employee.StatusTerminated,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved.TerminationDate)
		assert.NotEmpty(t, res.TerminationDate)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), TenantID: uuid.MustParse(tenantID)}, nil
		}

		_, err := deps.service.Update(ctx, tenantID, uuid.New().String(), employee.UpdateEmployeeRequest{
			FirstName: "Maya",
			LastName:  "Kusuma",
			Email:     "maya@example.com",
			Status:    "retired",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeStatus)
	})
}
