package leaveerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Leave type code already exists in this tenant",
		http.StatusConflict,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeConflict,
		"Leave type is referenced by existing leave requests and cannot be deleted",
		http.StatusConflict,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"Holiday not found",
		http.StatusNotFound,
	)
	ErrHolidayAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Holiday already exists for this tenant/country/date/name",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrHalfDayMultipleDates = apperror.New(
		apperror.CodeInvalidInput,
		"Half-day requests must start and end on the same date",
		http.StatusBadRequest,
	)
	ErrInvalidHalfDayPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"half_day_period must be morning or afternoon",
		http.StatusBadRequest,
	)
	ErrMaxConsecutiveDaysExceeded = apperror.New(
		apperror.CodeInvalidInput,
		"Request exceeds the maximum consecutive days for this leave type",
		http.StatusBadRequest,
	)
	ErrApprovalRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"Only owner, admin or manager roles may approve or reject leave requests",
		http.StatusForbidden,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the requesting employee may cancel this leave request",
		http.StatusForbidden,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeNotFound,
		"No employee profile linked to this user in the current tenant",
		http.StatusNotFound,
	)
)

// InvalidTransition carries the current status so clients can explain
// why the action was refused.
func InvalidTransition(current string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		"Leave request status is '"+current+"', the requested action is not allowed",
		http.StatusConflict,
	)
}
