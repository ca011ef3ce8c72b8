package companyerrors

import (
	"go-bossboard/internal/shared/apperror"
	"net/http"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidPayrollTime = apperror.New(
		apperror.CodeInvalidInput,
		"Payroll time must be HH:MM in 24-hour format (00:00-23:59)",
		http.StatusBadRequest,
	)

	ErrInvalidPayrollDate = apperror.New(
		apperror.CodeInvalidInput,
		"Payroll date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidWalletID = apperror.New(
		apperror.CodeInvalidInput,
		"Wallet ID must be a UUID",
		http.StatusBadRequest,
	)

	ErrInvalidWalletSetID = apperror.New(
		apperror.CodeInvalidInput,
		"Wallet set ID must be a UUID",
		http.StatusBadRequest,
	)

	ErrInvalidWalletAddress = apperror.New(
		apperror.CodeInvalidInput,
		"Master wallet address must be 0x followed by 40 hex characters",
		http.StatusBadRequest,
	)
)
