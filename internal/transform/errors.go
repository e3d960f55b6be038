package transform

import "codeberg.org/mutker/hwcaps/internal/errors"

const (
	ErrInvalidMax = errors.ErrorCode("transform_invalid_max")
)
