package hardware

import (
	"codeberg.org/mutker/hwcaps/internal/backend"
	"codeberg.org/mutker/hwcaps/internal/errors"
	"codeberg.org/mutker/hwcaps/internal/feature"
	"codeberg.org/mutker/hwcaps/internal/journal"
	"codeberg.org/mutker/hwcaps/internal/transform"
)

// bulkCalibration reads the bulk service's [R, G, B, min, max] array, or
// nil when the bulk path cannot answer.
func (m *Manager) bulkCalibration() []int {
	bulk := m.bulkFor(feature.DisplayColorCalibration)
	if bulk == nil {
		return nil
	}
	return m.calibrationArray(bulk)
}

// calibrationArray reads the array from a bulk service already known to
// advertise calibration.
func (m *Manager) calibrationArray(bulk backend.BulkService) []int {
	arr, err := bulk.DisplayColorCalibration()
	if err != nil {
		m.backendFailed(err, feature.DisplayColorCalibration, "get_calibration")
		return nil
	}
	return arr
}

// DisplayColorCalibration returns the current [R, G, B], or nil when no
// backend can answer.
func (m *Manager) DisplayColorCalibration() ([]int, error) {
	if err := m.authorize(); err != nil {
		return nil, err
	}

	id := feature.DisplayColorCalibration
	if h, ok := handleAs[backend.Calibration](m, id); ok {
		rgb, err := h.Calibration()
		if err != nil {
			m.backendFailed(err, id, "get_calibration")
			return nil, nil
		}
		if len(rgb) < 3 {
			return nil, nil
		}
		return rgb[:3:3], nil
	}

	arr := m.bulkCalibration()
	if len(arr) < 3 {
		m.unsupported(id, "get_calibration")
		return nil, nil
	}
	return []int{
		arr[backend.CalibrationRedIndex],
		arr[backend.CalibrationGreenIndex],
		arr[backend.CalibrationBlueIndex],
	}, nil
}

// DisplayColorCalibrationMin returns the lowest calibration value, 0 when
// unknown.
func (m *Manager) DisplayColorCalibrationMin() (int, error) {
	return m.calibrationBound(backend.CalibrationMinIndex, backend.Calibration.MinValue)
}

// DisplayColorCalibrationMax returns the highest calibration value, 0 when
// unknown.
func (m *Manager) DisplayColorCalibrationMax() (int, error) {
	return m.calibrationBound(backend.CalibrationMaxIndex, backend.Calibration.MaxValue)
}

func (m *Manager) calibrationBound(index int, native func(backend.Calibration) (int, error)) (int, error) {
	if err := m.authorize(); err != nil {
		return 0, err
	}

	id := feature.DisplayColorCalibration
	if h, ok := handleAs[backend.Calibration](m, id); ok {
		v, err := native(h)
		if err != nil {
			m.backendFailed(err, id, "calibration_bound")
			return 0, nil
		}
		return v, nil
	}

	arr := m.bulkCalibration()
	if len(arr) <= index {
		return 0, nil
	}
	return arr[index], nil
}

// SetDisplayColorCalibration writes [R, G, B]. Values are clamped into
// the backend's reported range before transmission.
func (m *Manager) SetDisplayColorCalibration(rgb []int) (bool, error) {
	if err := m.authorize(); err != nil {
		return false, err
	}
	if len(rgb) < 3 {
		return false, errors.New().WithData(errors.ErrInvalidArgument, rgb)
	}

	colors := [3]int{rgb[0], rgb[1], rgb[2]}
	ok := m.setCalibration(colors)
	m.record(feature.DisplayColorCalibration, journal.OpSetCalibration, colors[:], ok)
	return ok, nil
}

func (m *Manager) setCalibration(rgb [3]int) bool {
	id := feature.DisplayColorCalibration

	if h, ok := handleAs[backend.Calibration](m, id); ok {
		minValue, err := h.MinValue()
		if err != nil {
			m.backendFailed(err, id, "set_calibration")
			return false
		}
		maxValue, err := h.MaxValue()
		if err != nil {
			m.backendFailed(err, id, "set_calibration")
			return false
		}

		done, err := h.SetCalibration(transform.ClampCalibration(rgb, minValue, maxValue))
		if err != nil {
			m.backendFailed(err, id, "set_calibration")
			return false
		}
		return done
	}

	bulk := m.bulkFor(id)
	if bulk == nil {
		m.unsupported(id, "set_calibration")
		return false
	}

	if arr := m.calibrationArray(bulk); len(arr) > backend.CalibrationMaxIndex && arr[backend.CalibrationMaxIndex] != 0 {
		rgb = transform.ClampCalibration(rgb, arr[backend.CalibrationMinIndex], arr[backend.CalibrationMaxIndex])
	}

	done, err := bulk.SetDisplayColorCalibration(rgb[:])
	if err != nil {
		m.backendFailed(err, id, "set_calibration")
		return false
	}
	return done
}
