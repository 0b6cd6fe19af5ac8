package timesheet_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrm/internal/timesheet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTimesheetRepository struct {
	withTxFn                func(tx *sql.Tx) timesheet.Repository
	createFn                func(ctx context.Context, ts *timesheet.Timesheet) error
	findByIDAndTenantFn     func(ctx context.Context, tenantID, id string) (*timesheet.Timesheet, error)
	findByEmployeeFn        func(ctx context.Context, tenantID, employeeID string) ([]timesheet.Timesheet, error)
	findSubmittedByTenantFn func(ctx context.Context, tenantID string) ([]timesheet.Timesheet, error)
	findEmployeeIDByUserFn  func(ctx context.Context, tenantID, userID string) (string, error)
	sumApprovedHoursFn      func(ctx context.Context, tenantID, employeeID string, from, to time.Time) (decimal.Decimal, error)
	updateFn                func(ctx context.Context, ts *timesheet.Timesheet) error
	deleteFn                func(ctx context.Context, tenantID, id string) error
}

func (f *fakeTimesheetRepository) WithTx(tx *sql.Tx) timesheet.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTimesheetRepository) Create(ctx context.Context, ts *timesheet.Timesheet) error {
	if f.createFn != nil {
		return f.createFn(ctx, ts)
	}
	return nil
}

func (f *fakeTimesheetRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*timesheet.Timesheet, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimesheetRepository) FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]timesheet.Timesheet, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, tenantID, employeeID)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindSubmittedByTenant(ctx context.Context, tenantID string) ([]timesheet.Timesheet, error) {
	if f.findSubmittedByTenantFn != nil {
		return f.findSubmittedByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindEmployeeIDByUser(ctx context.Context, tenantID, userID string) (string, error) {
	if f.findEmployeeIDByUserFn != nil {
		return f.findEmployeeIDByUserFn(ctx, tenantID, userID)
	}
	return "", gorm.ErrRecordNotFound
}

func (f *fakeTimesheetRepository) SumApprovedHours(ctx context.Context, tenantID, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	if f.sumApprovedHoursFn != nil {
		return f.sumApprovedHoursFn(ctx, tenantID, employeeID, from, to)
	}
	return decimal.Zero, nil
}

func (f *fakeTimesheetRepository) Update(ctx context.Context, ts *timesheet.Timesheet) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, ts)
	}
	return nil
}

func (f *fakeTimesheetRepository) Delete(ctx context.Context, tenantID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, tenantID, id)
	}
	return nil
}

type fakeRoleSource struct {
	role string
	err  error
}

func (f *fakeRoleSource) RoleFor(ctx context.Context, userID, tenantID string) (string, error) {
	return f.role, f.err
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)
	return d
}

func fixedHours(hours int64) timesheet.StandardHours {
	return func(ctx context.Context, tenantID string, days int) (decimal.Decimal, error) {
		return decimal.NewFromInt(hours), nil
	}
}

func TestTimesheetService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New()

	t.Run("creates a draft with zeroed hours", func(t *testing.T) {
		repo := &fakeTimesheetRepository{
			findEmployeeIDByUserFn: func(ctx context.Context, tid, uid string) (string, error) {
				return employeeID.String(), nil
			},
		}
		var saved *timesheet.Timesheet
		repo.createFn = func(ctx context.Context, ts *timesheet.Timesheet) error {
			saved = ts
			return nil
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{role: "manager"}, fixedHours(80))
		res, err := svc.Create(ctx, tenantID, userID, timesheet.CreateTimesheetRequest{
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-14",
		})

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusDraft, res.Status)
		assert.Equal(t, "0", res.TotalHours)
		assert.Equal(t, employeeID.String(), saved.EmployeeID.String())
		assert.Equal(t, tenantID, saved.TenantID.String())
	})

	t.Run("period end before start is rejected", func(t *testing.T) {
		repo := &fakeTimesheetRepository{
			findEmployeeIDByUserFn: func(ctx context.Context, tid, uid string) (string, error) {
				return employeeID.String(), nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, nil)
		_, err := svc.Create(ctx, tenantID, userID, timesheet.CreateTimesheetRequest{
			PeriodStart: "2026-03-14",
			PeriodEnd:   "2026-03-01",
		})
		assert.ErrorIs(t, err, timesheet.ErrInvalidPeriod)
	})

	t.Run("user without employee profile cannot create", func(t *testing.T) {
		svc := timesheet.NewService(&fakeTimesheetRepository{}, &fakeRoleSource{}, nil)
		_, err := svc.Create(ctx, tenantID, userID, timesheet.CreateTimesheetRequest{
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-14",
		})
		assert.ErrorIs(t, err, timesheet.ErrNoEmployeeProfile)
	})

	t.Run("duplicate period maps to conflict", func(t *testing.T) {
		repo := &fakeTimesheetRepository{
			findEmployeeIDByUserFn: func(ctx context.Context, tid, uid string) (string, error) {
				return employeeID.String(), nil
			},
			createFn: func(ctx context.Context, ts *timesheet.Timesheet) error {
				return errDuplicatePeriod{}
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, nil)
		_, err := svc.Create(ctx, tenantID, userID, timesheet.CreateTimesheetRequest{
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-14",
		})
		assert.ErrorIs(t, err, timesheet.ErrPeriodAlreadyExists)
	})
}

// errDuplicatePeriod mimics the unique constraint violation text the
// driver produces for overlapping periods.
type errDuplicatePeriod struct{}

func (errDuplicatePeriod) Error() string {
	return `duplicate key value violates unique constraint "uq_timesheets_period"`
}

func TestTimesheetService_Submit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New()

	draft := func() *timesheet.Timesheet {
		return &timesheet.Timesheet{
			ID:          uuid.New(),
			TenantID:    uuid.MustParse(tenantID),
			EmployeeID:  employeeID,
			PeriodStart: mustDate(t, "2026-03-02"),
			PeriodEnd:   mustDate(t, "2026-03-15"),
			Status:      timesheet.StatusDraft,
		}
	}

	ownerRepo := func(ts *timesheet.Timesheet) *fakeTimesheetRepository {
		return &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				return ts, nil
			},
			findEmployeeIDByUserFn: func(ctx context.Context, tid, uid string) (string, error) {
				return employeeID.String(), nil
			},
		}
	}

	t.Run("recalculates totals and splits overtime", func(t *testing.T) {
		ts := draft()
		repo := ownerRepo(ts)
		repo.sumApprovedHoursFn = func(ctx context.Context, tid, eid string, from, to time.Time) (decimal.Decimal, error) {
			assert.Equal(t, ts.PeriodStart, from)
			assert.Equal(t, ts.PeriodEnd, to)
			return decimal.NewFromFloat(86.5), nil
		}
		var saved *timesheet.Timesheet
		repo.updateFn = func(ctx context.Context, updated *timesheet.Timesheet) error {
			saved = updated
			return nil
		}

		// 14 days at 80 expected hours for the period.
		svc := timesheet.NewService(repo, &fakeRoleSource{role: "employee"}, fixedHours(80))
		res, err := svc.Submit(ctx, tenantID, userID, ts.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusSubmitted, res.Status)
		assert.Equal(t, "86.5", res.TotalHours)
		assert.Equal(t, "6.5", res.OvertimeHours)
		assert.NotNil(t, saved.SubmittedAt)
		assert.Nil(t, saved.ReviewerID)
	})

	t.Run("no overtime when total stays within expectation", func(t *testing.T) {
		ts := draft()
		repo := ownerRepo(ts)
		repo.sumApprovedHoursFn = func(ctx context.Context, tid, eid string, from, to time.Time) (decimal.Decimal, error) {
			return decimal.NewFromInt(72), nil
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, fixedHours(80))
		res, err := svc.Submit(ctx, tenantID, userID, ts.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, "72", res.TotalHours)
		assert.Equal(t, "0", res.OvertimeHours)
	})

	t.Run("rejected timesheet may be resubmitted clean", func(t *testing.T) {
		reviewer := uuid.New()
		when := time.Now().UTC()
		ts := draft()
		ts.Status = timesheet.StatusRejected
		ts.ReviewerID = &reviewer
		ts.ReviewedAt = &when
		ts.ReviewNotes = "missing friday entries"

		repo := ownerRepo(ts)
		repo.sumApprovedHoursFn = func(ctx context.Context, tid, eid string, from, to time.Time) (decimal.Decimal, error) {
			return decimal.NewFromInt(80), nil
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, fixedHours(80))
		res, err := svc.Submit(ctx, tenantID, userID, ts.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusSubmitted, res.Status)
		assert.Empty(t, res.ReviewerID)
		assert.Empty(t, res.ReviewNotes)
	})

	t.Run("only the owner may submit", func(t *testing.T) {
		ts := draft()
		repo := ownerRepo(ts)
		repo.findEmployeeIDByUserFn = func(ctx context.Context, tid, uid string) (string, error) {
			return uuid.New().String(), nil
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, nil)
		_, err := svc.Submit(ctx, tenantID, userID, ts.ID.String())
		assert.ErrorIs(t, err, timesheet.ErrNotTimesheetOwner)
	})

	t.Run("approved timesheet cannot be submitted again", func(t *testing.T) {
		ts := draft()
		ts.Status = timesheet.StatusApproved

		summed := false
		repo := ownerRepo(ts)
		repo.sumApprovedHoursFn = func(ctx context.Context, tid, eid string, from, to time.Time) (decimal.Decimal, error) {
			summed = true
			return decimal.Zero, nil
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, nil)
		_, err := svc.Submit(ctx, tenantID, userID, ts.ID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "approved")
		assert.False(t, summed)
	})

	t.Run("unknown id surfaces as not found", func(t *testing.T) {
		svc := timesheet.NewService(&fakeTimesheetRepository{}, &fakeRoleSource{}, nil)
		_, err := svc.Submit(ctx, tenantID, userID, uuid.New().String())
		assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
	})
}

func TestTimesheetService_Review(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()
	reviewerID := uuid.New().String()

	submitted := func() *timesheet.Timesheet {
		return &timesheet.Timesheet{
			ID:          uuid.New(),
			TenantID:    uuid.MustParse(tenantID),
			EmployeeID:  uuid.New(),
			PeriodStart: mustDate(t, "2026-03-02"),
			PeriodEnd:   mustDate(t, "2026-03-15"),
			TotalHours:  decimal.NewFromInt(80),
			Status:      timesheet.StatusSubmitted,
		}
	}

	t.Run("manager approves with notes", func(t *testing.T) {
		ts := submitted()
		var saved *timesheet.Timesheet
		repo := &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				return ts, nil
			},
			updateFn: func(ctx context.Context, updated *timesheet.Timesheet) error {
				saved = updated
				return nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{role: "manager"}, nil)
		res, err := svc.Approve(ctx, tenantID, reviewerID, ts.ID.String(), "looks complete")

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusApproved, res.Status)
		assert.Equal(t, reviewerID, res.ReviewerID)
		assert.Equal(t, "looks complete", res.ReviewNotes)
		assert.NotNil(t, saved.ReviewedAt)
	})

	t.Run("reject sends the sheet back", func(t *testing.T) {
		ts := submitted()
		repo := &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				return ts, nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{role: "admin"}, nil)
		res, err := svc.Reject(ctx, tenantID, reviewerID, ts.ID.String(), "monday missing")

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusRejected, res.Status)
		assert.True(t, timesheet.Timesheet{Status: res.Status}.CanTransitionTo(timesheet.StatusSubmitted))
	})

	t.Run("employee role cannot review", func(t *testing.T) {
		fetched := false
		repo := &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				fetched = true
				return submitted(), nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{role: "employee"}, nil)
		_, err := svc.Approve(ctx, tenantID, reviewerID, uuid.New().String(), "")

		assert.ErrorIs(t, err, timesheet.ErrApprovalRoleRequired)
		assert.False(t, fetched)
	})

	t.Run("draft cannot be approved", func(t *testing.T) {
		ts := submitted()
		ts.Status = timesheet.StatusDraft
		repo := &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				return ts, nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{role: "owner"}, nil)
		_, err := svc.Approve(ctx, tenantID, reviewerID, ts.ID.String(), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "draft")
	})
}

func TestTimesheetService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()
	userID := uuid.New().String()
	employeeID := uuid.New()

	t.Run("owner deletes a draft", func(t *testing.T) {
		ts := &timesheet.Timesheet{ID: uuid.New(), EmployeeID: employeeID, Status: timesheet.StatusDraft}
		deleted := false
		repo := &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				return ts, nil
			},
			findEmployeeIDByUserFn: func(ctx context.Context, tid, uid string) (string, error) {
				return employeeID.String(), nil
			},
			deleteFn: func(ctx context.Context, tid, id string) error {
				deleted = true
				assert.Equal(t, ts.ID.String(), id)
				return nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, nil)
		assert.NoError(t, svc.Delete(ctx, tenantID, userID, ts.ID.String()))
		assert.True(t, deleted)
	})

	t.Run("submitted timesheets are protected", func(t *testing.T) {
		ts := &timesheet.Timesheet{ID: uuid.New(), EmployeeID: employeeID, Status: timesheet.StatusSubmitted}
		repo := &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				return ts, nil
			},
			findEmployeeIDByUserFn: func(ctx context.Context, tid, uid string) (string, error) {
				return employeeID.String(), nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, nil)
		err := svc.Delete(ctx, tenantID, userID, ts.ID.String())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "submitted")
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		ts := &timesheet.Timesheet{ID: uuid.New(), EmployeeID: uuid.New(), Status: timesheet.StatusDraft}
		repo := &fakeTimesheetRepository{
			findByIDAndTenantFn: func(ctx context.Context, tid, id string) (*timesheet.Timesheet, error) {
				return ts, nil
			},
			findEmployeeIDByUserFn: func(ctx context.Context, tid, uid string) (string, error) {
				return employeeID.String(), nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{}, nil)
		assert.ErrorIs(t, svc.Delete(ctx, tenantID, userID, ts.ID.String()), timesheet.ErrNotTimesheetOwner)
	})
}

func TestTimesheetService_Submitted(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()
	userID := uuid.New().String()

	t.Run("viewer role is refused", func(t *testing.T) {
		svc := timesheet.NewService(&fakeTimesheetRepository{}, &fakeRoleSource{role: "viewer"}, nil)
		_, err := svc.Submitted(ctx, tenantID, userID)
		assert.ErrorIs(t, err, timesheet.ErrApprovalRoleRequired)
	})

	t.Run("manager sees the submitted queue", func(t *testing.T) {
		repo := &fakeTimesheetRepository{
			findSubmittedByTenantFn: func(ctx context.Context, tid string) ([]timesheet.Timesheet, error) {
				return []timesheet.Timesheet{
					{ID: uuid.New(), Status: timesheet.StatusSubmitted, TotalHours: decimal.NewFromInt(80)},
				}, nil
			},
		}

		svc := timesheet.NewService(repo, &fakeRoleSource{role: "manager"}, nil)
		res, err := svc.Submitted(ctx, tenantID, userID)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, timesheet.StatusSubmitted, res[0].Status)
	})
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		current string
		next    string
		want    bool
	}{
		{timesheet.StatusDraft, timesheet.StatusSubmitted, true},
		{timesheet.StatusRejected, timesheet.StatusSubmitted, true},
		{timesheet.StatusSubmitted, timesheet.StatusApproved, true},
		{timesheet.StatusSubmitted, timesheet.StatusRejected, true},
		{timesheet.StatusApproved, timesheet.StatusSubmitted, false},
		{timesheet.StatusDraft, timesheet.StatusApproved, false},
		{timesheet.StatusApproved, timesheet.StatusRejected, false},
	}
	for _, tc := range cases {
		got := timesheet.Timesheet{Status: tc.current}.CanTransitionTo(tc.next)
		assert.Equal(t, tc.want, got, "%s -> %s", tc.current, tc.next)
	}
}
