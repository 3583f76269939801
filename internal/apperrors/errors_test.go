package apperrors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_Wrapping(t *testing.T) {
	err := fmt.Errorf("loading grid: %w", apperrors.NewDataSourceError("failed to list ledger entries", context.DeadlineExceeded))

	assert.True(t, errors.Is(err, apperrors.ErrDataSource))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))

	var appErr *apperrors.AppError
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, http.StatusBadGateway, appErr.Code)
	}
}

func TestConstructors(t *testing.T) {
	assert.ErrorIs(t, apperrors.NewValidationError("bad month"), apperrors.ErrValidation)
	assert.ErrorIs(t, apperrors.NewNotFoundError("missing"), apperrors.ErrNotFound)
	assert.ErrorIs(t, apperrors.NewForbiddenError("other workspace"), apperrors.ErrForbidden)
	assert.Equal(t, "bad month: validation error", apperrors.NewValidationError("bad month").Error())
}
