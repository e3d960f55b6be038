package legacy

import "codeberg.org/mutker/hwcaps/internal/errors"

const (
	ErrSetColorMatrix     = errors.ErrorCode("legacy_set_color_matrix_failed")
	ErrInvalidCalibration = errors.ErrorCode("legacy_invalid_calibration")
)
