package workererrors

import (
	"go-bossboard/internal/shared/apperror"
	"net/http"
)

var (
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Worker not found",
		http.StatusNotFound,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid worker ID",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrDepartmentNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"Department does not belong to this company",
		http.StatusBadRequest,
	)
	ErrInvalidWalletAddress = apperror.New(
		apperror.CodeInvalidInput,
		"Wallet address must be 0x followed by 40 hex characters",
		http.StatusBadRequest,
	)
	ErrNegativeSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Salary must not be negative",
		http.StatusBadRequest,
	)
	ErrWorkerAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A worker with this wallet address already exists in the department",
		http.StatusConflict,
	)
)
