package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := Externalf(stderrors.New("connection refused"), "translate %d lines", 3)
	wrapped := fmt.Errorf("failed to add article: %w", err)

	assert.True(t, Is(wrapped, ErrExternal))
	assert.False(t, Is(wrapped, ErrValidation))
	assert.Equal(t, "translate 3 lines: connection refused", err.Error())
}

func TestAsExposesDetails(t *testing.T) {
	err := fmt.Errorf("config: %w", ValidationWithDetails("validation failed", map[string]string{"url": "is required"}))

	var domainErr *Error
	assert.True(t, As(err, &domainErr))
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Equal(t, map[string]string{"url": "is required"}, domainErr.Details)
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, CodeInternal, "save pairs")
	assert.Same(t, cause, Unwrap(err))
	assert.Equal(t, "not found", NotFoundf("not found").Error())
}
