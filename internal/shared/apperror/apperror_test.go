package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-bossboard/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "busy", http.StatusConflict)
		httpErr := apperror.ToHTTP(fmt.Errorf("outer: %w", err))

		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.Equal(t, "busy", httpErr.Message)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
	})
}

func TestWithDetails(t *testing.T) {
	cause := errors.New("commit failed")
	base := apperror.Wrap(cause, apperror.CodeInternalError, "not recorded", http.StatusInternalServerError)

	withDetails := base.WithDetails([]string{"tx-1"})

	assert.Nil(t, base.Details)
	assert.True(t, errors.Is(withDetails, base))
	assert.True(t, errors.Is(withDetails, cause))
	httpErr := apperror.ToHTTP(withDetails)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, []string{"tx-1"}, httpErr.Details)
}

func TestWrap_PreservesSentinelIdentity(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	wrapped := apperror.Wrap(cause, apperror.ErrNotFound.Code, apperror.ErrNotFound.Message, http.StatusNotFound)

	assert.True(t, errors.Is(wrapped, apperror.ErrNotFound))
	assert.True(t, errors.Is(wrapped, cause))
	assert.Nil(t, apperror.Wrap(nil, "X", "y", 400))
}

func TestMapValidationError(t *testing.T) {
	type period struct {
		Start string `validate:"required,datetime=2006-01-02"`
	}
	v := validator.New()

	err := apperror.MapValidationError(v.Struct(period{}))
	assert.Equal(t, "Start is required", err.(*apperror.AppError).Message)

	err = apperror.MapValidationError(v.Struct(period{Start: "03/01/2026"}))
	assert.Equal(t, "Start must be a YYYY-MM-DD date", err.(*apperror.AppError).Message)

	err = apperror.MapValidationError(errors.New("EOF"))
	assert.Equal(t, apperror.CodeInvalidInput, err.(*apperror.AppError).Code)
}
