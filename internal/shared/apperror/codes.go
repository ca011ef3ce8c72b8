package apperror

// Codes are stable strings clients switch on; messages may change.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeRateLimited  = "RATE_LIMITED"
	CodeProcessing   = "PROCESSING"

	// Payroll
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeRunInProgress     = "PAYROLL_RUN_IN_PROGRESS"

	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	// CodeUpstreamError marks a failure reported by the wallet provider.
	CodeUpstreamError = "UPSTREAM_ERROR"
)
