package contracterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"Contract not found",
		http.StatusNotFound,
	)
	ErrContractTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Contract type not found",
		http.StatusNotFound,
	)
	ErrContractTypeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Contract type code already exists in this tenant",
		http.StatusConflict,
	)
	ErrContractTypeInUse = apperror.New(
		apperror.CodeConflict,
		"Contract type is referenced by existing contracts and cannot be deleted",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee not found for this tenant",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Salary must be a valid decimal number",
		http.StatusBadRequest,
	)
)
