package legacy

import (
	"sync"

	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/logger"
	"codeberg.org/mutker/hwcaps/internal/transform"
)

const (
	calibrationMin = 0
	calibrationMax = 255
)

// Hardware is the accelerated-transform implementation of the bulk
// service. Without an accelerated transform it advertises nothing.
type Hardware struct {
	transformer DisplayTransformer
	accelerated bool
	supported   feature.Mask
	logger      logger.Logger

	mu             sync.Mutex
	colors         [3]int
	readingEnabled bool
}

var _ backend.BulkService = (*Hardware)(nil)

func NewHardware(transformer DisplayTransformer, accelerated bool, log logger.Logger) *Hardware {
	if log == nil {
		log = logger.Nop()
	}
	h := &Hardware{
		transformer: transformer,
		accelerated: accelerated && transformer != nil,
		colors:      [3]int{calibrationMax, calibrationMax, calibrationMax},
		logger:      log.With("legacy"),
	}
	if h.accelerated {
		h.supported = h.supported.
			With(feature.DisplayColorCalibration).
			With(feature.ReadingEnhancement)
	}

	return h
}

func (h *Hardware) SupportedFeatures() (feature.Mask, error) {
	return h.supported, nil
}

func (h *Hardware) Get(id feature.ID) (bool, error) {
	if id == feature.ReadingEnhancement && h.accelerated {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.readingEnabled, nil
	}

	h.logger.Error().Str("feature", id.String()).Msg("Feature is not a boolean feature")
	return false, nil
}

func (h *Hardware) Set(id feature.ID, enabled bool) (bool, error) {
	if id != feature.ReadingEnhancement || !h.accelerated {
		h.logger.Error().Str("feature", id.String()).Msg("Feature is not a boolean feature")
		return false, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	m := transform.IdentityMatrix()
	if enabled {
		m = grayscaleMatrix
	}
	if err := h.transformer.SetColorMatrix(LevelColorMatrixReading, transform.MatrixValues(m)); err != nil {
		return false, errors.New().Wrap(ErrSetColorMatrix, err)
	}
	h.readingEnabled = enabled

	return true, nil
}

// DisplayColorCalibration returns [R, G, B, min, max].
func (h *Hardware) DisplayColorCalibration() ([]int, error) {
	if !h.accelerated {
		h.logger.Error().Msg("Invalid color calibration")
		return nil, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]int, backend.CalibrationMaxIndex+1)
	out[backend.CalibrationRedIndex] = h.colors[0]
	out[backend.CalibrationGreenIndex] = h.colors[1]
	out[backend.CalibrationBlueIndex] = h.colors[2]
	out[backend.CalibrationMinIndex] = calibrationMin
	out[backend.CalibrationMaxIndex] = calibrationMax

	return out, nil
}

func (h *Hardware) SetDisplayColorCalibration(rgb []int) (bool, error) {
	if !h.accelerated {
		return false, nil
	}
	if len(rgb) < 3 {
		return false, errors.New().WithData(ErrInvalidCalibration, rgb)
	}

	colors := transform.ClampCalibration([3]int{rgb[0], rgb[1], rgb[2]}, calibrationMin, calibrationMax)
	m, err := transform.CalibrationMatrix(colors, calibrationMax)
	if err != nil {
		return false, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.transformer.SetColorMatrix(LevelColorMatrixCalibration, transform.MatrixValues(m)); err != nil {
		return false, errors.New().Wrap(ErrSetColorMatrix, err)
	}
	h.colors = colors

	h.logger.Debug().Ints("rgb", colors[:]).Msg("Applied display color calibration")

	return true, nil
}
