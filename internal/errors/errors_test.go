package errors_test

import (
	"fmt"
	"testing"

	"codeberg.org/mutker/hwcaps/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	f := errors.New()

	assert.Equal(t, "Invalid argument provided", f.New(errors.ErrInvalidArgument).Error())
	assert.Equal(t, "custom", f.WithMessage(errors.ErrInternal, "custom").Error())
	assert.Equal(t, "Invalid argument provided: 0x4", f.WithData(errors.ErrInvalidArgument, "0x4").Error())
	assert.Equal(t, "unregistered_code", f.New(errors.ErrorCode("unregistered_code")).Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("binder died")
	err := errors.New().Wrap(errors.ErrRemoteCall, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, errors.ErrRemoteCall, err.Code())
	assert.Contains(t, err.Error(), "binder died")
}

func TestHasCode(t *testing.T) {
	f := errors.New()
	inner := f.New(errors.ErrPermissionDenied)
	outer := f.Wrap(errors.ErrOperationFailed, inner)

	assert.True(t, errors.HasCode(outer, errors.ErrOperationFailed))
	assert.True(t, errors.HasCode(outer, errors.ErrPermissionDenied))
	assert.False(t, errors.HasCode(outer, errors.ErrInvalidArgument))
	assert.False(t, errors.HasCode(fmt.Errorf("plain"), errors.ErrInternal))
	assert.False(t, errors.HasCode(nil, errors.ErrInternal))
}

func TestWithDataKeepsCode(t *testing.T) {
	err := errors.New().New(errors.ErrInvalidArgument).WithData("feature 0x4 is not a boolean")

	assert.Equal(t, errors.ErrInvalidArgument, err.Code())
	assert.Equal(t, "feature 0x4 is not a boolean", err.GetData())
}
