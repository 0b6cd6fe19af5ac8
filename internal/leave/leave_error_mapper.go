package leave

import (
	"errors"
	"net/http"
	"strings"

	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_leave_types_tenant_code":
				return leaveerrors.ErrLeaveTypeCodeAlreadyExists
			case "uq_holidays_key":
				return leaveerrors.ErrHolidayAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "uq_leave_types_tenant_code") {
			return leaveerrors.ErrLeaveTypeCodeAlreadyExists
		}
		if strings.Contains(errMsg, "uq_holidays_key") {
			return leaveerrors.ErrHolidayAlreadyExists
		}
	}

	return err
}

func apperrInvalidDecimal(field string) error {
	return apperror.New(
		apperror.CodeInvalidInput,
		"Field '"+field+"' must be a valid decimal number",
		http.StatusBadRequest,
	)
}
