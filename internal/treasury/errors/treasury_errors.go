package treasuryerrors

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
	ErrNoWallet = apperror.New(
		apperror.CodeInvalidState,
		"company wallet is not configured",
		http.StatusBadRequest,
	)
	ErrTransactionNotFound = apperror.New(
		apperror.CodeNotFound,
		"wallet transaction not found",
		http.StatusNotFound,
	)
	ErrGatewayUnavailable = apperror.New(
		apperror.CodeUpstreamError,
		"wallet provider is unavailable",
		http.StatusBadGateway,
	)
)
