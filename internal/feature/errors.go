package feature

import "codeberg.org/mutker/hwcaps/internal/errors"

const (
	ErrUnknownFeature = errors.ErrorCode("feature_unknown")
	ErrNotBoolean     = errors.ErrorCode("feature_not_boolean")
	ErrUnknownName    = errors.ErrorCode("feature_unknown_name")
)
