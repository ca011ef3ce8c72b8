package spendingerrors

import (
	"go-bossboard/internal/shared/apperror"
	"net/http"
)

var (
	ErrSpendingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Spending not found",
		http.StatusNotFound,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrInvalidSpendingID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid spending ID",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
	ErrInvalidWalletAddress = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid wallet address format",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
