package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/verte-zerg/typelingo/internal/errors"
)

type sample struct {
	URL   string `validate:"required,url"`
	Level string `validate:"omitempty,oneof=debug info"`
}

func TestValidate(t *testing.T) {
	v := New()
	require.NoError(t, v.Validate(sample{URL: "http://localhost:5000/translate"}))

	err := v.Validate(sample{URL: "not a url", Level: "loud"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var domainErr *apperrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, map[string]string{
		"URL":   "must be a valid URL",
		"Level": "must be one of: debug info",
	}, domainErr.Details)
	assert.Equal(t, "validation failed: Level must be one of: debug info; URL must be a valid URL", Describe(err))
}
