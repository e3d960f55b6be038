package legacy

import (
	"codeberg.org/mutker/hwcaps/internal/access"
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/logger"
)

// Service guards a bulk implementation: every call is access-checked and
// features outside the advertised mask are refused.
type Service struct {
	impl    backend.BulkService
	checker access.Checker
	logger  logger.Logger
}

var _ backend.BulkService = (*Service)(nil)

func NewService(impl backend.BulkService, checker access.Checker, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		impl:    impl,
		checker: checker,
		logger:  log.With("legacy_service"),
	}
}

func (s *Service) isSupported(id feature.ID) bool {
	mask, err := s.impl.SupportedFeatures()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read supported features")
		return false
	}
	return mask.Has(id)
}

func (s *Service) SupportedFeatures() (feature.Mask, error) {
	if err := access.Enforce(s.checker); err != nil {
		return 0, err
	}
	return s.impl.SupportedFeatures()
}

func (s *Service) Get(id feature.ID) (bool, error) {
	if err := access.Enforce(s.checker); err != nil {
		return false, err
	}
	if !s.isSupported(id) {
		s.logger.Error().Str("feature", id.String()).Msg("Feature is not supported")
		return false, nil
	}
	return s.impl.Get(id)
}

func (s *Service) Set(id feature.ID, enabled bool) (bool, error) {
	if err := access.Enforce(s.checker); err != nil {
		return false, err
	}
	if !s.isSupported(id) {
		s.logger.Error().Str("feature", id.String()).Msg("Feature is not supported")
		return false, nil
	}
	return s.impl.Set(id, enabled)
}

func (s *Service) DisplayColorCalibration() ([]int, error) {
	if err := access.Enforce(s.checker); err != nil {
		return nil, err
	}
	if !s.isSupported(feature.DisplayColorCalibration) {
		s.logger.Error().Msg("Display color calibration is not supported")
		return nil, nil
	}
	return s.impl.DisplayColorCalibration()
}

func (s *Service) SetDisplayColorCalibration(rgb []int) (bool, error) {
	if err := access.Enforce(s.checker); err != nil {
		return false, err
	}
	if !s.isSupported(feature.DisplayColorCalibration) {
		s.logger.Error().Msg("Display color calibration is not supported")
		return false, nil
	}
	if len(rgb) < 3 {
		s.logger.Error().Ints("rgb", rgb).Msg("Invalid color calibration")
		return false, nil
	}
	return s.impl.SetDisplayColorCalibration(rgb)
}
