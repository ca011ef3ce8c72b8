package payrollerrors

import (
	"net/http"

	"go-bossboard/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodRange = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must not be after period_end",
		http.StatusBadRequest,
	)
	ErrNoCredential = apperror.New(
		apperror.CodeInvalidState,
		"wallet credential is not configured",
		http.StatusBadRequest,
	)
	ErrInvalidCredential = apperror.New(
		apperror.CodeInvalidState,
		"wallet credential is malformed",
		http.StatusBadRequest,
	)
	ErrNoWallet = apperror.New(
		apperror.CodeInvalidState,
		"company wallet is not configured",
		http.StatusBadRequest,
	)
	ErrNoActiveWorkers = apperror.New(
		apperror.CodeInvalidState,
		"company has no active workers",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientFunds,
		"wallet balance does not cover payroll",
		http.StatusBadRequest,
	)
	ErrRunInProgress = apperror.New(
		apperror.CodeRunInProgress,
		"a payroll run for this company is already in progress",
		http.StatusConflict,
	)
	// ErrTransfersNotRecorded means money moved but the ledger write failed;
	// the transfers travel in Details so the caller can reconcile.
	ErrTransfersNotRecorded = apperror.New(
		apperror.CodeInternalError,
		"payroll transfers were sent but could not be recorded",
		http.StatusInternalServerError,
	)
	ErrLockUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"payroll lock is unavailable",
		http.StatusServiceUnavailable,
	)
)
