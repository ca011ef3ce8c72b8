package revenueerrors

import (
	"go-bossboard/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrRevenueConflict = apperror.New(
		apperror.CodeConflict,
		"Revenue for this month was written concurrently, retry",
		http.StatusConflict,
	)
)
