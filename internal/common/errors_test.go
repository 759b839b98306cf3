package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserErrorMessage(t *testing.T) {
	wrapped := NewUserError("could not open data folder", ErrUnknownFolder)
	assert.Equal(t, "could not open data folder: unrecognized folder naming convention", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrUnknownFolder)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("nothing to do", nil)
	assert.Equal(t, "nothing to do", err.Error())

	var userErr *UserError
	assert.True(t, errors.As(err, &userErr))
	assert.Nil(t, userErr.Unwrap())
}
