package tenanterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrTenantNotFound = apperror.New(
		apperror.CodeNotFound,
		"tenant not found",
		http.StatusNotFound,
	)
	ErrMembershipNotFound = apperror.New(
		apperror.CodeNotFound,
		"membership not found",
		http.StatusNotFound,
	)
	ErrSettingsNotFound = apperror.New(
		apperror.CodeNotFound,
		"tenant settings not found",
		http.StatusNotFound,
	)
	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid tenant id",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidMembershipID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid membership id",
		http.StatusBadRequest,
	)
	ErrInvalidTimesheetPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"timesheet_period must be one of weekly, biweekly, monthly",
		http.StatusBadRequest,
	)
)
